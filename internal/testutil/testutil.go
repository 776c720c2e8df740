// Copyright 2025 M'Cube Collections
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"

	"github.com/mcubecollections/selfie-verification/internal/database"
	"github.com/mcubecollections/selfie-verification/internal/models"
	"github.com/mcubecollections/selfie-verification/internal/repository"
)

// NewTestDB creates an in-memory SQLite database for tests.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	repo := repository.New(db)
	return db, repo
}

// NewTestVerification inserts a verification record with sensible defaults.
// The caller can mutate the returned template before calling if needed; the
// record is stored as given except for timestamps.
func NewTestVerification(t *testing.T, repo *repository.Repository, sessionID, status string) *models.Verification {
	t.Helper()
	v := &models.Verification{
		SessionID: sessionID,
		Name:      "Ama Mensah",
		Email:     "ama@example.com",
		PINNumber: "GHA-123456789-0",
		Status:    status,
		Code:      "00",
		Verified:  "TRUE",
	}
	if status == models.StatusFailed {
		v.Code = "01"
		v.Verified = "FALSE"
	}
	_, err := repo.CreateVerification(context.Background(), v)
	require.NoError(t, err)
	return v
}

// NewEchoContext creates an Echo context for handler tests.
func NewEchoContext(e *echo.Echo, method, path string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

// NewFormContext creates an Echo context carrying URL-encoded form data.
func NewFormContext(e *echo.Echo, method, path string, form map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	values := url.Values{}
	for k, v := range form {
		values.Set(k, v)
	}
	req := httptest.NewRequest(method, path, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}
