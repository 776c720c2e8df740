// Copyright 2025 M'Cube Collections
// Licensed under the EUPL-1.2

package views

import (
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/mcubecollections/selfie-verification/internal/models"
)

// AdminLogin renders the admin login form.
func AdminLogin(csrfToken string, showError bool) templ.Component {
	return layout("Admin Login", func(w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Admin Login</h1>`); err != nil {
			return err
		}
		if showError {
			if _, err := io.WriteString(w, `<p class="error">Invalid username or password.</p>`); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<form class="card" method="post" action="/admin/login">`); err != nil {
			return err
		}
		if err := csrfField(w, csrfToken); err != nil {
			return err
		}
		_, err := io.WriteString(w, `
<label for="username">Username</label>
<input id="username" name="username" required>
<label for="password">Password</label>
<input id="password" name="password" type="password" required>
<button type="submit">Log in</button>
</form>`)
		return err
	})
}

// DashboardData is everything the dashboard page shows.
type DashboardData struct { //nolint:govet // fieldalignment: readability over optimization
	Username      string
	Stats         *models.Stats
	Verifications []models.Verification
	Page          int
	SearchQuery   string
}

// AdminDashboard renders the stats header and one page of verifications.
func AdminDashboard(d DashboardData) templ.Component {
	return layout("Verification Dashboard", func(w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<h1>Verification Dashboard</h1>
<p>Signed in as <strong>%s</strong> &middot; <a href="/admin/logout">Log out</a></p>
<div class="stats">
<div><strong>%d</strong><br>Total</div>
<div><strong>%d</strong><br>Approved</div>
<div><strong>%d</strong><br>Failed</div>
<div><strong>%d</strong><br>Pending</div>
</div>
<form method="get" action="/admin/search">
<input name="q" placeholder="Search name, email or PIN" value="%s">
</form>`,
			esc(d.Username), d.Stats.Total, d.Stats.Approved, d.Stats.Failed, d.Stats.Pending,
			esc(d.SearchQuery)); err != nil {
			return err
		}

		if _, err := io.WriteString(w,
			`<table><tr><th>Created</th><th>Name</th><th>Email</th><th>PIN</th><th>Status</th><th></th></tr>`); err != nil {
			return err
		}
		for _, v := range d.Verifications {
			if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>`,
				v.CreatedAt.Format("2006-01-02 15:04"), esc(v.Name), esc(v.Email), esc(v.PINNumber)); err != nil {
				return err
			}
			if err := statusBadge(w, v.Status); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, `</td><td><a href="/admin/verification/%s">Detail</a></td></tr>`,
				esc(v.SessionID)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</table>`); err != nil {
			return err
		}

		// Pager is hidden on search results.
		if d.SearchQuery == "" {
			if d.Page > 1 {
				if _, err := fmt.Fprintf(w, `<a href="/admin/dashboard?page=%d">&laquo; Newer</a> `, d.Page-1); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, `<a href="/admin/dashboard?page=%d">Older &raquo;</a>`, d.Page+1); err != nil {
				return err
			}
		}
		return nil
	})
}

// DetailData is the admin detail page payload. The JSON blocks are
// pretty-printed by the handler; empty strings hide the block.
type DetailData struct { //nolint:govet // fieldalignment: readability over optimization
	Username     string
	Verification *models.Verification
	PersonJSON   string
	RequestJSON  string
	ResponseJSON string
}

// AdminDetail renders one verification record in full.
func AdminDetail(d DetailData) templ.Component {
	v := d.Verification
	return layout("Verification "+v.SessionID, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<h1>Verification Detail</h1>
<p><a href="/admin/dashboard">&laquo; Dashboard</a> &middot; Signed in as <strong>%s</strong></p>
<div class="card">
<p><strong>Session:</strong> %s</p>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>PIN:</strong> %s</p>
<p><strong>Status:</strong> `,
			esc(d.Username), esc(v.SessionID), esc(v.Name), esc(v.Email), esc(v.PINNumber)); err != nil {
			return err
		}
		if err := statusBadge(w, v.Status); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w,
			`</p>
<p><strong>Code:</strong> %s &middot; <strong>Verified:</strong> %s</p>
<p><strong>Transaction:</strong> %s</p>
<p><strong>Created:</strong> %s</p>
<p><a href="/admin/verification/%s/download">Download PDF report</a></p>`,
			esc(v.Code), esc(v.Verified), esc(v.TransactionGUID),
			v.CreatedAt.Format("2006-01-02 15:04:05"), esc(v.SessionID)); err != nil {
			return err
		}
		if v.PhotoURL != "" {
			if _, err := fmt.Fprintf(w, `<p><img src="%s" alt="Selfie" width="200"></p>`, esc(v.PhotoURL)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</div>`); err != nil {
			return err
		}

		for _, block := range []struct {
			title string
			body  string
		}{
			{"Person Data", d.PersonJSON},
			{"Request Data", d.RequestJSON},
			{"Response Data", d.ResponseJSON},
		} {
			if block.body == "" {
				continue
			}
			if _, err := fmt.Fprintf(w, `<h2>%s</h2><pre>%s</pre>`, block.title, esc(block.body)); err != nil {
				return err
			}
		}
		return nil
	})
}
