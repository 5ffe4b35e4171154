package auth

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/petmanager/petmanager-be/internal/shared/utils"
)

type Service struct {
	repo       *Repository
	jwtService *JWTService
}

// NewService creates a new auth service
func NewService(db *gorm.DB, jwtSecret string) *Service {
	return &Service{
		repo:       NewRepository(db),
		jwtService: NewJWTService(jwtSecret),
	}
}

// Register creates a new user account
func (s *Service) Register(req *RegisterRequest) (*AuthResponse, error) {
	// Check if email already exists
	exists, err := s.repo.EmailExists(req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("email already registered")
	}

	// Hash password
	passwordHash, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Email:        req.Email,
		Name:         req.Name,
		Role:         req.Role,
		PasswordHash: passwordHash,
		IsActive:     true,
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	utils.LogInfo("✅ User registered", map[string]interface{}{"email": user.Email, "user_id": user.ID})

	return s.generateAuthResponse(user)
}

// Login authenticates user with email and password
func (s *Service) Login(req *LoginRequest) (*AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(req.Email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("invalid email or password")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// Verify password
	if err := VerifyPassword(user.PasswordHash, req.Password); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	// Update last login
	_ = s.repo.UpdateLastLogin(user.ID.String(), user.Email)

	utils.LogInfo("✅ User logged in", map[string]interface{}{"email": user.Email, "user_id": user.ID})

	return s.generateAuthResponse(user)
}

// RefreshToken generates new access token from refresh token
func (s *Service) RefreshToken(refreshToken string) (*AuthResponse, error) {
	// Validate refresh token
	userID, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	// Get user by refresh token (verify it matches DB)
	user, err := s.repo.GetUserByRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("refresh token not found or expired")
	}

	if user.ID.String() != userID {
		return nil, fmt.Errorf("refresh token user mismatch")
	}

	utils.LogInfo("✅ Token refreshed", map[string]interface{}{"email": user.Email, "user_id": user.ID})

	return s.generateAuthResponse(user)
}

// Logout revokes user's refresh token
func (s *Service) Logout(userID string) error {
	if err := s.repo.RevokeRefreshToken(userID); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	utils.LogInfo("✅ User logged out", map[string]interface{}{"user_id": userID})
	return nil
}

// ValidateToken validates an access token and returns user info
func (s *Service) ValidateToken(accessToken string) (*TokenClaims, error) {
	claims, err := s.jwtService.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, fmt.Errorf("invalid access token: %w", err)
	}
	return claims, nil
}

// generateAuthResponse generates auth response with tokens and user info
func (s *Service) generateAuthResponse(user *User) (*AuthResponse, error) {
	// The access assignment is the source of truth for the role. The column
	// on users is only a fallback for accounts without an assignment.
	role := user.Role
	if accessRole, err := s.repo.GetAccessRole(user.Email); err == nil && accessRole != "" {
		role = accessRole
	}

	claims := &TokenClaims{
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   role,
	}

	// Generate access token
	accessToken, expiresIn, err := s.jwtService.GenerateAccessToken(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	// Generate refresh token
	refreshToken, expiresAt, err := s.jwtService.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	// Store refresh token in database
	if err := s.repo.UpdateRefreshToken(user.ID.String(), refreshToken, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	userInfo := &UserInfo{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  user.Name,
		Role:  role,
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		User:         userInfo,
	}, nil
}
