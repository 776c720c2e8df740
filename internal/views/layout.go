// Copyright 2025 M'Cube Collections
// Licensed under the EUPL-1.2

// Package views holds the server-rendered pages. Components are built
// programmatically on templ.Component so handlers can treat them uniformly.
package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

const styles = `body{font-family:system-ui,sans-serif;margin:0;background:#faf7f0;color:#1f2937}
main{max-width:960px;margin:0 auto;padding:2rem 1rem}
h1{color:#b47b18}
a{color:#b47b18}
.badge{display:inline-block;padding:.2rem .6rem;border-radius:.4rem;color:#fff;font-size:.8rem}
.badge.approved{background:#10b981}
.badge.failed{background:#ef4444}
.badge.pending{background:#6b7280}
table{width:100%;border-collapse:collapse;background:#fff}
th,td{padding:.5rem .6rem;border-bottom:1px solid #e5e7eb;text-align:left;font-size:.9rem}
form.card,div.card{background:#fff;padding:1.5rem;border-radius:.5rem;box-shadow:0 1px 3px rgba(0,0,0,.1)}
label{display:block;margin:.8rem 0 .2rem;font-weight:600}
input,textarea{width:100%;padding:.5rem;border:1px solid #d1d5db;border-radius:.3rem;box-sizing:border-box}
button{margin-top:1rem;background:#b47b18;color:#fff;border:0;padding:.6rem 1.4rem;border-radius:.3rem;cursor:pointer}
.stats{display:flex;gap:1rem;margin:1rem 0}
.stats div{flex:1;background:#fff;padding:1rem;border-radius:.5rem;text-align:center}
.error{color:#ef4444}
pre{background:#f3f4f6;padding:1rem;border-radius:.4rem;overflow-x:auto;font-size:.8rem}`

// layout wraps a page body in the shared HTML shell.
func layout(title string, body func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			"<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\">"+
				"<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">"+
				"<title>%s</title><style>%s</style></head><body><main>",
			templ.EscapeString(title), styles)
		if err != nil {
			return err
		}
		if err := body(w); err != nil {
			return err
		}
		_, err = io.WriteString(w, "</main></body></html>")
		return err
	})
}

func esc(s string) string { return templ.EscapeString(s) }

// statusBadge renders the color-coded status label.
func statusBadge(w io.Writer, status string) error {
	class := status
	switch status {
	case "approved", "failed", "pending":
	default:
		class = "pending"
	}
	_, err := fmt.Fprintf(w, `<span class="badge %s">%s</span>`, class, esc(status))
	return err
}

// csrfField renders the hidden CSRF input for POST forms.
func csrfField(w io.Writer, token string) error {
	_, err := fmt.Fprintf(w, `<input type="hidden" name="csrf_token" value="%s">`, esc(token))
	return err
}
