// Copyright 2025 M'Cube Collections
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/mcubecollections/selfie-verification/internal/models"
)

// searchLimit caps the number of rows a keyword search returns.
const searchLimit = 50

// CreateVerification inserts a new verification record and returns the
// generated id. A duplicate session id surfaces as ErrDuplicate.
func (r *Repository) CreateVerification(ctx context.Context, v *models.Verification) (int64, error) {
	now := time.Now().UTC()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now
	}
	v.UpdatedAt = now

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO verifications (
			session_id, name, email, pin_number, status, code, verified,
			transaction_guid, person_data, request_data, response_data, photo_url,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.SessionID, v.Name, v.Email, v.PINNumber, v.Status, v.Code, v.Verified,
		v.TransactionGUID, v.PersonData, v.RequestData, v.ResponseData, v.PhotoURL,
		v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return 0, wrapError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	v.ID = id
	return id, nil
}

// GetVerificationBySessionID retrieves a verification by its session id.
// Absence is reported as ErrNotFound, never as a raw driver error.
func (r *Repository) GetVerificationBySessionID(ctx context.Context, sessionID string) (*models.Verification, error) {
	var v models.Verification
	err := r.db.GetContext(ctx, &v,
		`SELECT * FROM verifications WHERE session_id = ?`, sessionID)
	if err != nil {
		return nil, wrapError(err)
	}
	return &v, nil
}

// ListVerifications returns records ordered newest-first.
func (r *Repository) ListVerifications(ctx context.Context, limit, offset int) ([]models.Verification, error) {
	var out []models.Verification
	err := r.db.SelectContext(ctx, &out,
		`SELECT * FROM verifications ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SearchVerifications performs a case-insensitive substring match across
// name, email and pin number, newest-first, capped at 50 rows.
func (r *Repository) SearchVerifications(ctx context.Context, term string) ([]models.Verification, error) {
	pattern := "%" + term + "%"
	var out []models.Verification
	err := r.db.SelectContext(ctx, &out,
		`SELECT * FROM verifications
		 WHERE name LIKE ? OR email LIKE ? OR pin_number LIKE ?
		 ORDER BY created_at DESC, id DESC LIMIT ?`,
		pattern, pattern, pattern, searchLimit)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// VerificationStats returns aggregate status counts over the full table.
func (r *Repository) VerificationStats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	err := r.db.GetContext(ctx, &stats,
		`SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = 'approved' THEN 1 ELSE 0 END), 0) AS approved,
			COALESCE(SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END), 0) AS failed,
			COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0) AS pending
		FROM verifications`)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
