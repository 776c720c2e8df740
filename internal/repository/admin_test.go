// Copyright 2025 M'Cube Collections
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcubecollections/selfie-verification/internal/repository"
	"github.com/mcubecollections/selfie-verification/internal/testutil"
)

func TestAdminLifecycle(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	count, err := repo.CountAdmins(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	created, err := repo.CreateAdmin(ctx, "admin", "hashed-password")
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	got, err := repo.GetAdminByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "hashed-password", got.PasswordHash)

	count, err = repo.CountAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGetAdminNotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	_, err := repo.GetAdminByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateAdminDuplicateUsername(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	_, err := repo.CreateAdmin(ctx, "admin", "hash-one")
	require.NoError(t, err)

	_, err = repo.CreateAdmin(ctx, "admin", "hash-two")
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}
