package auth

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new auth repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user
func (r *Repository) CreateUser(user *User) error {
	return r.db.Create(user).Error
}

// GetUserByEmail retrieves user by email
func (r *Repository) GetUserByEmail(email string) (*User, error) {
	var user User
	err := r.db.Where("email = ? AND is_active = ?", email, true).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID retrieves user by ID
func (r *Repository) GetUserByID(id string) (*User, error) {
	var user User
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByRefreshToken retrieves user by refresh token
func (r *Repository) GetUserByRefreshToken(refreshToken string) (*User, error) {
	var user User
	err := r.db.Where("refresh_token = ? AND is_active = ?", refreshToken, true).First(&user).Error
	if err != nil {
		return nil, err
	}

	// Check if refresh token is expired
	if user.RefreshTokenExpiresAt != nil && user.RefreshTokenExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("refresh token expired")
	}

	return &user, nil
}

// UpdateRefreshToken updates user's refresh token
func (r *Repository) UpdateRefreshToken(userID string, refreshToken string, expiresAt time.Time) error {
	return r.db.Model(&User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"refresh_token":            refreshToken,
			"refresh_token_expires_at": expiresAt,
		}).Error
}

// UpdateLastLogin updates the user's last login timestamp. The access
// assignment row for the same email is bumped too so the access editor
// shows fresh activity.
func (r *Repository) UpdateLastLogin(userID, email string) error {
	now := time.Now()
	if err := r.db.Model(&User{}).
		Where("id = ?", userID).
		Update("last_login_at", now).Error; err != nil {
		return err
	}
	return r.db.Table("user_access").
		Where("email = ?", email).
		Update("last_login_at", now).Error
}

// RevokeRefreshToken revokes (clears) user's refresh token
func (r *Repository) RevokeRefreshToken(userID string) error {
	return r.db.Model(&User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"refresh_token":            nil,
			"refresh_token_expires_at": nil,
		}).Error
}

// EmailExists checks if email already exists
func (r *Repository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetAccessRole returns the role from the user_access assignment for the
// email, if one exists. Token claims prefer the assignment role so that
// access edits take effect on the next login.
func (r *Repository) GetAccessRole(email string) (string, error) {
	var access struct {
		Role string
	}
	err := r.db.Table("user_access").
		Select("role").
		Where("email = ?", email).
		First(&access).Error
	if err != nil {
		return "", err
	}
	return access.Role, nil
}
