// Copyright 2025 M'Cube Collections
// Licensed under the EUPL-1.2

package models

import "time"

// Verification statuses. A record is written exactly once with its final
// status; there is no later transition path.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusFailed   = "failed"
)

// Verification is one identity-verification attempt. Records are immutable
// after creation. The *Data columns hold serialized JSON; empty means the
// provider returned nothing for that column.
type Verification struct { //nolint:govet // fieldalignment: readability over optimization
	ID              int64     `db:"id" json:"id"`
	SessionID       string    `db:"session_id" json:"session_id"`
	Name            string    `db:"name" json:"name"`
	Email           string    `db:"email" json:"email"`
	PINNumber       string    `db:"pin_number" json:"pin_number"`
	Status          string    `db:"status" json:"status"`
	Code            string    `db:"code" json:"code"`
	Verified        string    `db:"verified" json:"verified"`
	TransactionGUID string    `db:"transaction_guid" json:"transaction_guid"`
	PersonData      string    `db:"person_data" json:"person_data"`
	RequestData     string    `db:"request_data" json:"request_data"`
	ResponseData    string    `db:"response_data" json:"response_data"`
	PhotoURL        string    `db:"photo_url" json:"photo_url"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Stats are aggregate counts over the verifications table.
type Stats struct {
	Total    int64 `db:"total" json:"total"`
	Approved int64 `db:"approved" json:"approved"`
	Failed   int64 `db:"failed" json:"failed"`
	Pending  int64 `db:"pending" json:"pending"`
}
