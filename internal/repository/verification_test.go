// Copyright 2025 M'Cube Collections
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcubecollections/selfie-verification/internal/models"
	"github.com/mcubecollections/selfie-verification/internal/repository"
	"github.com/mcubecollections/selfie-verification/internal/testutil"
)

func TestCreateAndGetVerification(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	v := &models.Verification{
		SessionID:       "txn-abc",
		Name:            "Ama Mensah",
		Email:           "ama@example.com",
		PINNumber:       "GHA-123456789-0",
		Status:          models.StatusApproved,
		Code:            "00",
		Verified:        "TRUE",
		TransactionGUID: "txn-abc",
		PersonData:      `{"person":{"fullName":"Ama Mensah"}}`,
		RequestData:     `{"pinNumber":"GHA***"}`,
		ResponseData:    `{"code":"00"}`,
		PhotoURL:        "https://assets.example.com/selfie.png",
	}

	id, err := repo.CreateVerification(ctx, v)
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := repo.GetVerificationBySessionID(ctx, "txn-abc")
	require.NoError(t, err)
	assert.Equal(t, v.Name, got.Name)
	assert.Equal(t, v.Email, got.Email)
	assert.Equal(t, v.Status, got.Status)
	assert.Equal(t, v.PersonData, got.PersonData)
	assert.Equal(t, v.PhotoURL, got.PhotoURL)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestGetVerificationNotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	_, err := repo.GetVerificationBySessionID(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDuplicateSessionID(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	testutil.NewTestVerification(t, repo, "txn-dup", models.StatusApproved)

	_, err := repo.CreateVerification(ctx, &models.Verification{
		SessionID: "txn-dup",
		Name:      "Kofi Boateng",
		Email:     "kofi@example.com",
		PINNumber: "GHA-987654321-0",
		Status:    models.StatusFailed,
	})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestListVerificationsNewestFirst(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	for i, sessionID := range []string{"txn-1", "txn-2", "txn-3"} {
		v := &models.Verification{
			SessionID: sessionID,
			Name:      "User",
			Email:     "user@example.com",
			PINNumber: "GHA-0",
			Status:    models.StatusApproved,
			CreatedAt: time.Date(2025, 8, 1, 10, i, 0, 0, time.UTC),
		}
		_, err := repo.CreateVerification(ctx, v)
		require.NoError(t, err)
	}

	got, err := repo.ListVerifications(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "txn-3", got[0].SessionID)
	assert.Equal(t, "txn-2", got[1].SessionID)

	rest, err := repo.ListVerifications(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "txn-1", rest[0].SessionID)
}

func TestSearchVerifications(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	insert := func(sessionID, name, email, pin string) {
		_, err := repo.CreateVerification(ctx, &models.Verification{
			SessionID: sessionID,
			Name:      name,
			Email:     email,
			PINNumber: pin,
			Status:    models.StatusApproved,
		})
		require.NoError(t, err)
	}
	insert("s-1", "Ama Mensah", "ama@example.com", "GHA-111111111-1")
	insert("s-2", "Kofi Boateng", "kofi@example.com", "GHA-222222222-2")
	insert("s-3", "Akosua Mensah", "akosua@other.com", "GHA-333333333-3")

	byName, err := repo.SearchVerifications(ctx, "Mensah")
	require.NoError(t, err)
	assert.Len(t, byName, 2)

	byEmail, err := repo.SearchVerifications(ctx, "kofi@")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, "s-2", byEmail[0].SessionID)

	byPIN, err := repo.SearchVerifications(ctx, "333333333")
	require.NoError(t, err)
	require.Len(t, byPIN, 1)
	assert.Equal(t, "s-3", byPIN[0].SessionID)

	none, err := repo.SearchVerifications(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestVerificationStats(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	empty, err := repo.VerificationStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.Total)

	testutil.NewTestVerification(t, repo, "st-1", models.StatusApproved)
	testutil.NewTestVerification(t, repo, "st-2", models.StatusApproved)
	testutil.NewTestVerification(t, repo, "st-3", models.StatusFailed)

	stats, err := repo.VerificationStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.Approved)
	assert.Equal(t, int64(1), stats.Failed)
	assert.Equal(t, int64(0), stats.Pending)
	assert.Equal(t, stats.Total, stats.Approved+stats.Failed+stats.Pending)
}
