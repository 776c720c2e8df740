// Copyright 2025 M'Cube Collections
// Licensed under the EUPL-1.2

package email

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcubecollections/selfie-verification/internal/config"
)

func TestSendSkipsWithoutRecipients(t *testing.T) {
	svc := NewService(config.SMTPConfig{Host: "smtp.example.com", Username: "u", From: "f@example.com"}, nil)

	err := svc.SendApprovalNotification(Notification{Name: "Ama", SessionID: "txn-1"})
	assert.NoError(t, err)
}

func TestSendSkipsWithIncompleteConfig(t *testing.T) {
	svc := NewService(config.SMTPConfig{}, []string{"ops@example.com"})

	err := svc.SendApprovalNotification(Notification{Name: "Ama", SessionID: "txn-1"})
	assert.NoError(t, err)
}
