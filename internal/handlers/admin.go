// Copyright 2025 M'Cube Collections
// Licensed under the EUPL-1.2

package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mcubecollections/selfie-verification/internal/report"
	"github.com/mcubecollections/selfie-verification/internal/repository"
	"github.com/mcubecollections/selfie-verification/internal/services/auth"
	"github.com/mcubecollections/selfie-verification/internal/services/session"
	"github.com/mcubecollections/selfie-verification/internal/views"
)

// AdminContextKey is where the authentication middleware stores the decoded
// admin session on the echo context.
const AdminContextKey = "admin_session"

// dashboardPageSize is the number of records per dashboard page.
const dashboardPageSize = 20

// AdminHandlers serves the password-protected dashboard.
type AdminHandlers struct {
	repo     *repository.Repository
	auth     *auth.Service
	sessions *session.Manager
	reports  *report.Generator
}

// NewAdmin creates the dashboard handlers.
func NewAdmin(
	repo *repository.Repository,
	authSvc *auth.Service,
	sessions *session.Manager,
	reports *report.Generator,
) *AdminHandlers {
	return &AdminHandlers{
		repo:     repo,
		auth:     authSvc,
		sessions: sessions,
		reports:  reports,
	}
}

// adminSession returns the session the middleware attached, or nil.
func adminSession(c echo.Context) *session.Session {
	s, _ := c.Get(AdminContextKey).(*session.Session)
	return s
}

// LoginPage renders the login form. A logged-in admin is sent straight to
// the dashboard.
func (h *AdminHandlers) LoginPage(c echo.Context) error {
	if _, err := h.sessions.Get(c.Request()); err == nil {
		return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
	}
	showError := c.QueryParam("error") != ""
	return Render(c, http.StatusOK, views.AdminLogin(csrfToken(c), showError))
}

// Login authenticates the admin and sets the session cookie. Failures loop
// back to the form without revealing which credential was wrong.
func (h *AdminHandlers) Login(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")

	admin, err := h.auth.Login(c.Request().Context(), username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.Redirect(http.StatusSeeOther, "/admin/login?error=1")
		}
		return err
	}

	cookie, err := h.sessions.Create(admin.ID, admin.Username)
	if err != nil {
		return err
	}
	c.SetCookie(cookie)

	return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
}

// Logout clears the session cookie.
func (h *AdminHandlers) Logout(c echo.Context) error {
	c.SetCookie(h.sessions.Clear())
	return c.Redirect(http.StatusSeeOther, "/admin/login")
}

// Dashboard renders the stats and one page of recent verifications.
func (h *AdminHandlers) Dashboard(c echo.Context) error {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}

	ctx := c.Request().Context()
	stats, err := h.repo.VerificationStats(ctx)
	if err != nil {
		return err
	}
	records, err := h.repo.ListVerifications(ctx, dashboardPageSize, (page-1)*dashboardPageSize)
	if err != nil {
		return err
	}

	return Render(c, http.StatusOK, views.AdminDashboard(views.DashboardData{
		Username:      adminSession(c).Username,
		Stats:         stats,
		Verifications: records,
		Page:          page,
	}))
}

// Search renders the dashboard filtered by a keyword across name, email and
// PIN. An empty query falls back to the regular dashboard.
func (h *AdminHandlers) Search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
	}

	ctx := c.Request().Context()
	stats, err := h.repo.VerificationStats(ctx)
	if err != nil {
		return err
	}
	records, err := h.repo.SearchVerifications(ctx, query)
	if err != nil {
		return err
	}

	return Render(c, http.StatusOK, views.AdminDashboard(views.DashboardData{
		Username:      adminSession(c).Username,
		Stats:         stats,
		Verifications: records,
		Page:          1,
		SearchQuery:   query,
	}))
}

// Detail renders one verification record in full, including the stored
// provider payloads.
func (h *AdminHandlers) Detail(c echo.Context) error {
	v, err := h.repo.GetVerificationBySessionID(c.Request().Context(), c.Param("sessionId"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Render(c, http.StatusNotFound, views.NotFoundPage())
		}
		return err
	}

	return Render(c, http.StatusOK, views.AdminDetail(views.DetailData{
		Username:     adminSession(c).Username,
		Verification: v,
		PersonJSON:   prettyJSON(v.PersonData),
		RequestJSON:  prettyJSON(v.RequestData),
		ResponseJSON: prettyJSON(v.ResponseData),
	}))
}

// Download streams the PDF report for a verification.
func (h *AdminHandlers) Download(c echo.Context) error {
	v, err := h.repo.GetVerificationBySessionID(c.Request().Context(), c.Param("sessionId"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Render(c, http.StatusNotFound, views.NotFoundPage())
		}
		return err
	}

	pdf, err := h.reports.Render(c.Request().Context(), v)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, reportFilename(v.Name, v.SessionID)))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// reportFilename builds a filesystem-safe download name from the user name
// and a session id prefix.
func reportFilename(name, sessionID string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, name)
	if sanitized == "" {
		sanitized = "unknown"
	}
	if len(sessionID) > 8 {
		sessionID = sessionID[:8]
	}
	return fmt.Sprintf("verification_report_%s_%s.pdf", sanitized, sessionID)
}

// prettyJSON indents a stored JSON column for display. Empty columns stay
// empty so the block is hidden; malformed payloads are shown as stored.
func prettyJSON(raw string) string {
	if raw == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(raw), "", "  "); err != nil {
		return raw
	}
	return buf.String()
}
