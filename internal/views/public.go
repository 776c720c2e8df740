// Copyright 2025 M'Cube Collections
// Licensed under the EUPL-1.2

package views

import (
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Landing is the public entry page.
func Landing(portalURL string) templ.Component {
	return layout("M'Cube Plus Verification", func(w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<h1>Identity Verification</h1>
<div class="card">
<p>Verify your identity with your Ghana Card and a selfie photo.</p>
<p><a href="/verify">Start verification</a></p>
<p><a href="%s">Back to the borrowers portal</a></p>
</div>`, esc(portalURL))
		return err
	})
}

// Start renders the verification submission form. The selfie is captured
// client side and posted as a base64 string.
func Start(csrfToken string) templ.Component {
	return layout("Start Verification", func(w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Start Verification</h1>
<form class="card" method="post" action="/verify/begin">`); err != nil {
			return err
		}
		if err := csrfField(w, csrfToken); err != nil {
			return err
		}
		_, err := io.WriteString(w, `
<label for="name">Full name</label>
<input id="name" name="name" required>
<label for="email">Email address</label>
<input id="email" name="email" type="email" required>
<label for="pinNumber">Ghana Card PIN</label>
<input id="pinNumber" name="pinNumber" required>
<label for="imageBase64">Selfie (base64, max 1MB decoded)</label>
<textarea id="imageBase64" name="imageBase64" rows="4" required></textarea>
<button type="submit">Verify</button>
</form>`)
		return err
	})
}

// Progress is the polling page shown while a verification is in flight.
func Progress(sessionID string) templ.Component {
	return layout("Verification in Progress", func(w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<h1>Verification in Progress</h1>
<div class="card">
<p>Checking the status of session <strong>%s</strong>&hellip;</p>
<script>
setInterval(async () => {
  const res = await fetch('/status/%s');
  if (!res.ok) return;
  const body = await res.json();
  if (body.status !== 'pending') {
    window.location = '/verify/result?sessionId=%s';
  }
}, 2000);
</script>
</div>`, esc(sessionID), esc(sessionID), esc(sessionID))
		return err
	})
}

// Result shows the outcome of a verification. An unknown session renders a
// neutral page, not an error.
func Result(status, name, portalURL string) templ.Component {
	return layout("Verification Result", func(w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Verification Result</h1><div class="card">`); err != nil {
			return err
		}
		switch status {
		case "approved":
			if _, err := fmt.Fprintf(w, `<p>Thank you %s, your identity was verified successfully.</p>`, esc(name)); err != nil {
				return err
			}
		case "failed":
			if _, err := io.WriteString(w, `<p class="error">Unfortunately your identity could not be verified.</p>`); err != nil {
				return err
			}
		default:
			if _, err := io.WriteString(w, `<p>We could not find this verification session.</p>`); err != nil {
				return err
			}
		}
		if err := statusBadge(w, status); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, `<p><a href="%s">Back to the borrowers portal</a></p></div>`, esc(portalURL))
		return err
	})
}

// ErrorPage is the generic failure page.
func ErrorPage(message string) templ.Component {
	return layout("Something went wrong", func(w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<h1>Something went wrong</h1>
<div class="card"><p class="error">%s</p><p><a href="/verify">Try again</a></p></div>`,
			esc(message))
		return err
	})
}

// NotFoundPage is the 404 page.
func NotFoundPage() templ.Component {
	return layout("Not Found", func(w io.Writer) error {
		_, err := io.WriteString(w,
			`<h1>Not Found</h1><div class="card"><p>The page you requested does not exist.</p><p><a href="/">Home</a></p></div>`)
		return err
	})
}
