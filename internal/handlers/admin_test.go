// Copyright 2025 M'Cube Collections
// Licensed under the EUPL-1.2

package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcubecollections/selfie-verification/internal/config"
	"github.com/mcubecollections/selfie-verification/internal/handlers"
	"github.com/mcubecollections/selfie-verification/internal/models"
	"github.com/mcubecollections/selfie-verification/internal/report"
	"github.com/mcubecollections/selfie-verification/internal/repository"
	"github.com/mcubecollections/selfie-verification/internal/services/auth"
	"github.com/mcubecollections/selfie-verification/internal/services/session"
	"github.com/mcubecollections/selfie-verification/internal/testutil"
)

type noFetcher struct{}

func (noFetcher) Fetch(context.Context, string) ([]byte, error) {
	return nil, context.Canceled
}

func newAdminHandlers(t *testing.T) (*handlers.AdminHandlers, *repository.Repository, *session.Manager) {
	t.Helper()
	_, repo := testutil.NewTestDB(t)

	authSvc := auth.NewService(repo, config.AdminConfig{DefaultPassword: "test-password"})
	require.NoError(t, authSvc.EnsureAdmin(context.Background()))

	sessions, err := session.NewManager(config.SessionConfig{
		CookieName: "_admin_session",
		MaxAge:     3600,
	}, false)
	require.NoError(t, err)

	reports := report.NewGenerator(noFetcher{})
	return handlers.NewAdmin(repo, authSvc, sessions, reports), repo, sessions
}

// withAdminSession attaches an authenticated admin session the way the
// middleware would.
func withAdminSession(c echo.Context) {
	c.Set(handlers.AdminContextKey, &session.Session{AdminID: 1, Username: "admin"})
}

func TestAdminLoginSuccess(t *testing.T) {
	h, _, _ := newAdminHandlers(t)

	e := echo.New()
	c, rec := testutil.NewFormContext(e, http.MethodPost, "/admin/login", map[string]string{
		"username": "admin",
		"password": "test-password",
	})

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/dashboard", rec.Header().Get(echo.HeaderLocation))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "_admin_session", cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestAdminLoginPage(t *testing.T) {
	h, _, sessions := newAdminHandlers(t)
	e := echo.New()

	t.Run("anonymous sees the form", func(t *testing.T) {
		c, rec := testutil.NewEchoContext(e, http.MethodGet, "/admin/login", nil)
		require.NoError(t, h.LoginPage(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Admin Login")
	})

	t.Run("authenticated admin is redirected", func(t *testing.T) {
		cookie, err := sessions.Create(1, "admin")
		require.NoError(t, err)

		c, rec := testutil.NewEchoContext(e, http.MethodGet, "/admin/login", nil)
		c.Request().AddCookie(cookie)

		require.NoError(t, h.LoginPage(c))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/admin/dashboard", rec.Header().Get(echo.HeaderLocation))
	})
}

func TestAdminLoginFailure(t *testing.T) {
	h, _, _ := newAdminHandlers(t)
	e := echo.New()

	for _, form := range []map[string]string{
		{"username": "admin", "password": "wrong"},
		{"username": "ghost", "password": "test-password"},
	} {
		c, rec := testutil.NewFormContext(e, http.MethodPost, "/admin/login", form)
		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/admin/login?error=1", rec.Header().Get(echo.HeaderLocation))
		assert.Empty(t, rec.Result().Cookies())
	}
}

func TestAdminLogout(t *testing.T) {
	h, _, _ := newAdminHandlers(t)

	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/admin/logout", nil)

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestAdminDashboard(t *testing.T) {
	h, repo, _ := newAdminHandlers(t)
	testutil.NewTestVerification(t, repo, "txn-dash-1", models.StatusApproved)
	testutil.NewTestVerification(t, repo, "txn-dash-2", models.StatusFailed)

	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/admin/dashboard", nil)
	withAdminSession(c)

	require.NoError(t, h.Dashboard(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Verification Dashboard")
	assert.Contains(t, body, "txn-dash-1")
	assert.Contains(t, body, "txn-dash-2")
	assert.Contains(t, body, "admin")
}

func TestAdminSearch(t *testing.T) {
	h, repo, _ := newAdminHandlers(t)
	testutil.NewTestVerification(t, repo, "txn-search-1", models.StatusApproved)

	e := echo.New()

	t.Run("matching query", func(t *testing.T) {
		c, rec := testutil.NewEchoContext(e, http.MethodGet, "/admin/search?q=Mensah", nil)
		withAdminSession(c)

		require.NoError(t, h.Search(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "txn-search-1")
	})

	t.Run("empty query redirects", func(t *testing.T) {
		c, rec := testutil.NewEchoContext(e, http.MethodGet, "/admin/search?q=", nil)
		withAdminSession(c)

		require.NoError(t, h.Search(c))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/admin/dashboard", rec.Header().Get(echo.HeaderLocation))
	})
}

func TestAdminDetail(t *testing.T) {
	h, repo, _ := newAdminHandlers(t)

	v := &models.Verification{
		SessionID:  "txn-detail-1",
		Name:       "Ama Mensah",
		Email:      "ama@example.com",
		PINNumber:  "GHA-123456789-0",
		Status:     models.StatusApproved,
		Code:       "00",
		Verified:   "TRUE",
		PersonData: `{"person":{"fullName":"Ama Serwaa Mensah"}}`,
	}
	_, err := repo.CreateVerification(context.Background(), v)
	require.NoError(t, err)

	e := echo.New()

	t.Run("known record", func(t *testing.T) {
		c, rec := testutil.NewEchoContext(e, http.MethodGet, "/admin/verification/txn-detail-1", nil)
		c.SetParamNames("sessionId")
		c.SetParamValues("txn-detail-1")
		withAdminSession(c)

		require.NoError(t, h.Detail(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		assert.Contains(t, body, "txn-detail-1")
		assert.Contains(t, body, "Ama Serwaa Mensah")
		assert.Contains(t, body, "Download PDF report")
	})

	t.Run("unknown record", func(t *testing.T) {
		c, rec := testutil.NewEchoContext(e, http.MethodGet, "/admin/verification/missing", nil)
		c.SetParamNames("sessionId")
		c.SetParamValues("missing")
		withAdminSession(c)

		require.NoError(t, h.Detail(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAdminDownload(t *testing.T) {
	h, repo, _ := newAdminHandlers(t)
	testutil.NewTestVerification(t, repo, "txn-download-12345", models.StatusApproved)

	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/admin/verification/txn-download-12345/download", nil)
	c.SetParamNames("sessionId")
	c.SetParamValues("txn-download-12345")
	withAdminSession(c)

	require.NoError(t, h.Download(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "verification_report_ama_mensah_txn-down")
	assert.Equal(t, "%PDF", rec.Body.String()[:4])
}
