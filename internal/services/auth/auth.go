// Copyright 2025 M'Cube Collections
// Licensed under the EUPL-1.2

// Package auth authenticates dashboard administrators.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcubecollections/selfie-verification/internal/config"
	"github.com/mcubecollections/selfie-verification/internal/models"
	"github.com/mcubecollections/selfie-verification/internal/repository"
)

// ErrInvalidCredentials is returned for any failed login. It never reveals
// whether the username or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// bootstrapUsername is the account created when no admin exists yet.
const bootstrapUsername = "admin"

// dummyHash is used for constant-time login to prevent timing attacks
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), bcrypt.DefaultCost)

type Service struct {
	repo *repository.Repository
	cfg  config.AdminConfig
}

func NewService(repo *repository.Repository, cfg config.AdminConfig) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// Login authenticates an admin by username and password.
func (s *Service) Login(ctx context.Context, username, password string) (*models.AdminUser, error) {
	admin, err := s.repo.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Constant-time: always perform a bcrypt comparison so a missing
			// user is indistinguishable from a wrong password.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			slog.Warn("admin_login_failed", "username", username, "reason", "user_not_found")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		slog.Warn("admin_login_failed", "username", username, "reason", "invalid_password")
		return nil, ErrInvalidCredentials
	}

	slog.Info("admin_login_success", "admin_id", admin.ID, "username", username)
	return admin, nil
}

// EnsureAdmin creates the bootstrap admin account when none exists. The
// plaintext default password is logged exactly once; acceptable only for a
// non-production bootstrap.
func (s *Service) EnsureAdmin(ctx context.Context) error {
	count, err := s.repo.CountAdmins(ctx)
	if err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	password := s.cfg.DefaultPassword
	if password == "" {
		password = "admin123"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default password: %w", err)
	}

	if _, err := s.repo.CreateAdmin(ctx, bootstrapUsername, string(hash)); err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	slog.Warn("default admin created", "username", bootstrapUsername, "password", password)
	return nil
}
