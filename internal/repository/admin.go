// Copyright 2025 M'Cube Collections
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/mcubecollections/selfie-verification/internal/models"
)

// GetAdminByUsername retrieves an admin user by username.
func (r *Repository) GetAdminByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := r.db.GetContext(ctx, &admin,
		`SELECT * FROM admin_users WHERE username = ?`, username)
	if err != nil {
		return nil, wrapError(err)
	}
	return &admin, nil
}

// CreateAdmin creates a new admin user.
func (r *Repository) CreateAdmin(ctx context.Context, username, passwordHash string) (*models.AdminUser, error) {
	admin := &models.AdminUser{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO admin_users (username, password_hash, created_at) VALUES (?, ?, ?)`,
		admin.Username, admin.PasswordHash, admin.CreatedAt)
	if err != nil {
		return nil, wrapError(err)
	}
	admin.ID, err = res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return admin, nil
}

// CountAdmins returns the total number of admin users.
func (r *Repository) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM admin_users`); err != nil {
		return 0, err
	}
	return count, nil
}
