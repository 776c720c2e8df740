// Copyright 2025 M'Cube Collections
// Licensed under the EUPL-1.2

// Package handlers wires HTTP requests to the verification domain.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mcubecollections/selfie-verification/internal/config"
	"github.com/mcubecollections/selfie-verification/internal/models"
	"github.com/mcubecollections/selfie-verification/internal/repository"
	"github.com/mcubecollections/selfie-verification/internal/services/email"
	"github.com/mcubecollections/selfie-verification/internal/verifier"
	"github.com/mcubecollections/selfie-verification/internal/views"
)

// Uploader stores a selfie on the asset host and returns its public URL.
type Uploader interface {
	UploadSelfie(ctx context.Context, imageBase64, sessionID string) (string, error)
}

// Notifier sends the approval notification email.
type Notifier interface {
	SendApprovalNotification(n email.Notification) error
}

// VerificationHandlers serves the public verification flow.
type VerificationHandlers struct {
	repo      *repository.Repository
	client    *verifier.Client
	uploader  Uploader // nil when the asset host is not configured
	notifier  Notifier // nil when notifications are disabled
	portalURL string
	env       string
}

// NewVerification creates the public flow handlers. uploader and notifier
// may be nil; the flow then skips the corresponding side effect.
func NewVerification(
	repo *repository.Repository,
	client *verifier.Client,
	uploader Uploader,
	notifier Notifier,
	cfg *config.Config,
) *VerificationHandlers {
	return &VerificationHandlers{
		repo:      repo,
		client:    client,
		uploader:  uploader,
		notifier:  notifier,
		portalURL: cfg.Server.PortalURL,
		env:       cfg.Environment,
	}
}

// Health reports liveness.
func (h *VerificationHandlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":      "ok",
		"environment": h.env,
	})
}

// Landing renders the public entry page.
func (h *VerificationHandlers) Landing(c echo.Context) error {
	return Render(c, http.StatusOK, views.Landing(h.portalURL))
}

// StartPage renders the submission form.
func (h *VerificationHandlers) StartPage(c echo.Context) error {
	return Render(c, http.StatusOK, views.Start(csrfToken(c)))
}

// Begin runs one verification attempt end to end: provider call, selfie
// upload, persistence and notification. Transport failures are shown to the
// user without writing a record, so the attempt can be retried.
func (h *VerificationHandlers) Begin(c echo.Context) error {
	req := verifier.Request{
		Name:        c.FormValue("name"),
		ImageBase64: c.FormValue("imageBase64"),
		PINNumber:   c.FormValue("pinNumber"),
	}
	userEmail := strings.TrimSpace(c.FormValue("email"))
	if userEmail == "" {
		return Render(c, http.StatusBadRequest, views.ErrorPage("Name and email are required."))
	}

	result, err := h.client.Verify(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, verifier.ErrValidation) {
			return Render(c, http.StatusBadRequest, views.ErrorPage(err.Error()))
		}
		return err
	}

	switch result.Outcome {
	case verifier.OutcomeConfigurationMissing:
		slog.Error("verification rejected: provider is not configured")
		return Render(c, http.StatusServiceUnavailable,
			views.ErrorPage("The verification service is not configured. Please contact support."))
	case verifier.OutcomeTransportFailure:
		slog.Error("verification provider unreachable", "error", result.Cause)
		return Render(c, http.StatusBadGateway,
			views.ErrorPage("The verification service could not be reached. Please try again later."))
	case verifier.OutcomeApproved, verifier.OutcomeDenied:
	}

	sessionID := result.TransactionGUID
	if sessionID == "" {
		sessionID = newSessionID()
	}

	var photoURL string
	if h.uploader != nil {
		photoURL, err = h.uploader.UploadSelfie(c.Request().Context(), req.ImageBase64, sessionID)
		if err != nil {
			// The verification outcome stands even without a stored photo.
			slog.Error("selfie upload failed", "session_id", sessionID, "error", err)
			photoURL = ""
		}
	}

	record := &models.Verification{
		SessionID:       sessionID,
		Name:            req.Name,
		Email:           userEmail,
		PINNumber:       req.PINNumber,
		Status:          result.Status,
		Code:            result.Code,
		Verified:        result.Verified,
		TransactionGUID: result.TransactionGUID,
		PersonData:      marshalPerson(result.Person),
		RequestData:     marshalRequest(req, userEmail),
		ResponseData:    string(result.Raw),
		PhotoURL:        photoURL,
	}

	if _, err := h.repo.CreateVerification(c.Request().Context(), record); err != nil {
		slog.Error("storing verification failed", "session_id", sessionID, "error", err)
		return Render(c, http.StatusInternalServerError,
			views.ErrorPage("Your verification result could not be stored. Please try again."))
	}

	slog.Info("verification completed",
		"session_id", sessionID,
		"status", result.Status,
		"outcome", result.Outcome.String())

	if result.Outcome == verifier.OutcomeApproved && h.notifier != nil {
		n := email.Notification{
			Name:      record.Name,
			Email:     record.Email,
			SessionID: record.SessionID,
			Status:    record.Status,
		}
		go func() {
			if err := h.notifier.SendApprovalNotification(n); err != nil {
				slog.Error("approval notification failed", "session_id", n.SessionID, "error", err)
			}
		}()
	}

	return c.Redirect(http.StatusSeeOther, "/verify/result?sessionId="+url.QueryEscape(sessionID))
}

// ProgressPage renders the polling page for a running session.
func (h *VerificationHandlers) ProgressPage(c echo.Context) error {
	sessionID := c.QueryParam("sessionId")
	if sessionID == "" {
		return c.Redirect(http.StatusSeeOther, "/verify")
	}
	return Render(c, http.StatusOK, views.Progress(sessionID))
}

// ResultPage shows the stored outcome. Several query parameter names are
// accepted because external portals link back with different spellings.
func (h *VerificationHandlers) ResultPage(c echo.Context) error {
	var sessionID string
	for _, key := range []string{"sessionId", "session_id", "id", "referenceId"} {
		if v := c.QueryParam(key); v != "" {
			sessionID = v
			break
		}
	}

	if sessionID == "" {
		return Render(c, http.StatusOK, views.Result("", "", h.portalURL))
	}

	v, err := h.repo.GetVerificationBySessionID(c.Request().Context(), sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Render(c, http.StatusOK, views.Result("", "", h.portalURL))
		}
		return err
	}
	return Render(c, http.StatusOK, views.Result(v.Status, v.Name, h.portalURL))
}

// Status reports the stored state of a session as JSON.
func (h *VerificationHandlers) Status(c echo.Context) error {
	sessionID := c.Param("sessionId")

	v, err := h.repo.GetVerificationBySessionID(c.Request().Context(), sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "verification session not found"})
		}
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"sessionId": v.SessionID,
		"status":    v.Status,
		"updatedAt": v.UpdatedAt.UTC().Format(time.RFC3339),
	})
}

// Webhook rejects provider callbacks; the provider answers synchronously
// and no webhook contract exists.
func (h *VerificationHandlers) Webhook(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]string{
		"error": "webhook processing is not supported",
	})
}

// newSessionID builds a fallback session id for responses without a
// transaction guid.
func newSessionID() string {
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// marshalPerson serializes the identity payload under a "person" key so the
// report generator finds it where the provider envelope would carry it.
func marshalPerson(p *models.Person) string {
	if p == nil {
		return ""
	}
	raw, err := json.Marshal(map[string]*models.Person{"person": p})
	if err != nil {
		return ""
	}
	return string(raw)
}

// marshalRequest records a sanitized snapshot of the submission. The PIN is
// masked and the selfie is reduced to its encoded length; the stored
// snapshot must never reproduce the full submission.
func marshalRequest(req verifier.Request, userEmail string) string {
	raw, err := json.Marshal(map[string]any{
		"name":      req.Name,
		"email":     userEmail,
		"pinNumber": maskPIN(req.PINNumber),
		"imageSize": len(req.ImageBase64),
	})
	if err != nil {
		return ""
	}
	return string(raw)
}

func maskPIN(pin string) string {
	if len(pin) <= 3 {
		return pin + "***"
	}
	return pin[:3] + "***"
}
