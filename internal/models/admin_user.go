// Copyright 2025 M'Cube Collections
// Licensed under the EUPL-1.2

package models

import "time"

// AdminUser is a dashboard administrator. Created at bootstrap or out of
// band; only ever read during login.
type AdminUser struct { //nolint:govet // fieldalignment: readability over optimization
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
