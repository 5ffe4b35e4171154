package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/petmanager/petmanager-be/internal/modules/petstore/models"
	"github.com/petmanager/petmanager-be/internal/modules/petstore/repositories"
)

// AccessDraft is a scratch copy of a stored assignment. Edits land on the
// draft only; nothing reaches the store until Commit.
type AccessDraft struct {
	assignment models.UserAccess
}

// SetRole stages a role change on the draft.
func (d *AccessDraft) SetRole(role string) {
	d.assignment.Role = role
}

// TogglePermission stages adding or removing a permission tag.
func (d *AccessDraft) TogglePermission(tag string) {
	for i, p := range d.assignment.Permissions {
		if p == tag {
			d.assignment.Permissions = append(d.assignment.Permissions[:i], d.assignment.Permissions[i+1:]...)
			return
		}
	}
	d.assignment.Permissions = append(d.assignment.Permissions, tag)
}

// SetPermissions stages a full replacement of the permission set.
func (d *AccessDraft) SetPermissions(tags []string) {
	d.assignment.Permissions = append(d.assignment.Permissions[:0:0], tags...)
}

// Assignment returns the staged state.
func (d *AccessDraft) Assignment() models.UserAccess {
	return d.assignment
}

// AccessService manages user → role/permission assignments.
type AccessService struct {
	repo repositories.AccessRepo
}

func NewAccessService(repo repositories.AccessRepo) *AccessService {
	return &AccessService{repo: repo}
}

// List returns assignments, optionally filtered by a case-insensitive email
// substring.
func (s *AccessService) List(ctx context.Context, search string) ([]models.UserAccess, error) {
	assignments, err := s.repo.List(ctx)
	if err != nil {
		return nil, &TransportError{Op: "select", Err: err}
	}
	if search == "" {
		return assignments, nil
	}

	needle := strings.ToLower(search)
	filtered := make([]models.UserAccess, 0, len(assignments))
	for _, a := range assignments {
		if strings.Contains(strings.ToLower(a.Email), needle) {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

// Get returns a single assignment by id.
func (s *AccessService) Get(ctx context.Context, id string) (*models.UserAccess, error) {
	access, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "access assignment", ID: id}
		}
		return nil, &TransportError{Op: "select", Err: err}
	}
	return access, nil
}

// BeginEdit loads the stored assignment into a scratch draft. Discarding the
// draft is simply dropping it; stored state is untouched until Commit.
func (s *AccessService) BeginEdit(ctx context.Context, id string) (*AccessDraft, error) {
	access, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	draft := &AccessDraft{assignment: *access}
	// Deep-copy the slice so toggles never leak into the loaded record.
	draft.assignment.Permissions = append(access.Permissions[:0:0], access.Permissions...)
	return draft, nil
}

// Commit validates the staged role and tags and replaces the stored
// assignment in a single-record write. No merge: the draft is the complete
// new state.
func (s *AccessService) Commit(ctx context.Context, draft *AccessDraft) (*models.UserAccess, error) {
	staged := draft.assignment

	if !models.ValidRole(staged.Role) {
		return nil, &ValidationError{Field: "role", Reason: "unknown role " + staged.Role}
	}
	for _, tag := range staged.Permissions {
		if !models.ValidPermission(tag) {
			return nil, &ValidationError{Field: "permissions", Reason: "unknown permission " + tag}
		}
	}

	if err := s.repo.Replace(ctx, &staged); err != nil {
		return nil, &TransportError{Op: "update", Err: err}
	}

	log.Info().Str("email", staged.Email).Str("role", staged.Role).Msg("access assignment replaced")
	return &staged, nil
}
