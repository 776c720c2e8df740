// Copyright 2025 M'Cube Collections
// Licensed under the EUPL-1.2

// Package report renders a verification record into a downloadable PDF.
package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/mcubecollections/selfie-verification/internal/models"
)

// ImageFetcher retrieves selfie bytes from the asset host.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

const (
	pageLeft   = 50.0
	pageRight  = 545.0
	imageWidth = 200.0

	longDate        = "Monday, January 2, 2006 03:04 PM"
	longDateSeconds = "Monday, January 2, 2006 03:04:05 PM"
)

type rgb struct{ r, g, b int }

var (
	primaryColor = rgb{180, 123, 24}
	successColor = rgb{16, 185, 129}
	errorColor   = rgb{239, 68, 68}
	grayColor    = rgb{107, 114, 128}
	darkColor    = rgb{31, 41, 55}
)

// Generator builds verification reports.
type Generator struct {
	fetcher ImageFetcher
	now     func() time.Time
}

// NewGenerator creates a report generator that loads selfie images through
// the given fetcher.
func NewGenerator(fetcher ImageFetcher) *Generator {
	return &Generator{fetcher: fetcher, now: time.Now}
}

// Render produces the PDF for a verification record. An unreachable selfie
// URL degrades to a placeholder line; everything else fails the document.
func (g *Generator) Render(ctx context.Context, v *models.Verification) ([]byte, error) {
	personCol := parseColumn(v.PersonData)
	responseCol := parseColumn(v.ResponseData)
	person, envelope := extractPerson(personCol, responseCol)

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(pageLeft, pageLeft, pageLeft)
	pdf.SetAutoPageBreak(true, pageLeft)
	pdf.SetTitle(fmt.Sprintf("Verification Report - %s", v.Name), true)
	pdf.SetAuthor("M'Cube Plus Verification System", true)
	pdf.SetSubject("Identity Verification Report", true)
	pdf.AddPage()

	d := &doc{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	d.header(g.now(), v)
	d.summary(v, envelope, responseCol)
	d.userInfo(v, envelope, person)
	d.errorDetails(v, responseCol)
	if person != nil {
		d.identityCard(person)
	}
	if v.PhotoURL != "" {
		g.selfie(ctx, d, v.PhotoURL)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) selfie(ctx context.Context, d *doc, url string) {
	// Keep the image block together on one page where possible.
	if d.pdf.GetY() > 500 {
		d.pdf.AddPage()
	}
	d.sectionHeader("Selfie Verification Image")

	img, err := g.fetcher.Fetch(ctx, url)
	if err == nil {
		imgType := imageType(img)
		if imgType == "" {
			err = fmt.Errorf("unsupported image format")
		} else {
			opts := fpdf.ImageOptions{ImageType: imgType}
			d.pdf.RegisterImageOptionsReader("selfie", opts, bytes.NewReader(img))
			pageW, _ := d.pdf.GetPageSize()
			x := (pageW - imageWidth) / 2
			d.pdf.ImageOptions("selfie", x, d.pdf.GetY(), imageWidth, 0, true, opts, 0, "")
			d.pdf.Ln(14)
			return
		}
	}

	slog.Error("selfie image could not be loaded for report", "url", url, "error", err)
	d.pdf.SetFont("Helvetica", "", 10)
	d.setTextColor(grayColor)
	d.centered(10, 14, "Selfie image could not be loaded.")
	d.centered(10, 14, "Image URL: "+url)
}

// imageType maps sniffed content types onto fpdf image type names.
func imageType(img []byte) string {
	switch http.DetectContentType(img) {
	case "image/png":
		return "PNG"
	case "image/jpeg":
		return "JPG"
	case "image/gif":
		return "GIF"
	}
	return ""
}

// doc wraps fpdf with the layout helpers the sections share.
type doc struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (d *doc) setTextColor(c rgb) { d.pdf.SetTextColor(c.r, c.g, c.b) }

func (d *doc) centered(size, height float64, text string) {
	d.pdf.SetFontSize(size)
	d.pdf.CellFormat(0, height, d.tr(text), "", 1, "C", false, 0, "")
}

func (d *doc) sectionHeader(title string) {
	d.pdf.Ln(8)
	d.pdf.SetFont("Helvetica", "B", 14)
	d.setTextColor(primaryColor)
	d.pdf.CellFormat(0, 18, d.tr(title), "", 1, "L", false, 0, "")
	d.pdf.SetDrawColor(primaryColor.r, primaryColor.g, primaryColor.b)
	y := d.pdf.GetY()
	d.pdf.Line(pageLeft, y, pageRight, y)
	d.pdf.Ln(8)
	d.pdf.SetFont("Helvetica", "", 10)
	d.setTextColor(darkColor)
}

func (d *doc) subHeader(title string) {
	d.pdf.SetFont("Helvetica", "B", 11)
	d.setTextColor(primaryColor)
	d.pdf.CellFormat(0, 15, d.tr(title), "", 1, "L", false, 0, "")
	d.pdf.Ln(3)
}

// field renders one labelled value, skipping values the hygiene rule
// rejects.
func (d *doc) field(label, value string, indent float64) {
	value = strings.TrimSpace(value)
	if !renderable(value) {
		return
	}
	d.pdf.SetX(pageLeft + indent)
	d.pdf.SetFont("Helvetica", "B", 10)
	d.setTextColor(grayColor)
	d.pdf.Write(14, d.tr(label+":"))
	d.pdf.SetFont("Helvetica", "", 10)
	d.setTextColor(darkColor)
	d.pdf.Write(14, d.tr("  "+value))
	d.pdf.Ln(17)
}

func (d *doc) header(generated time.Time, v *models.Verification) {
	d.pdf.SetFont("Helvetica", "B", 22)
	d.setTextColor(primaryColor)
	d.centered(22, 28, "Identity Verification Report")
	d.pdf.Ln(6)

	statusColor := errorColor
	if v.Status == models.StatusApproved {
		statusColor = successColor
	}
	d.pdf.SetFont("Helvetica", "B", 16)
	d.setTextColor(statusColor)
	d.centered(16, 20, statusText(v.Status))
	d.pdf.Ln(12)

	d.pdf.SetFont("Helvetica", "", 9)
	d.setTextColor(grayColor)
	d.centered(9, 13, "Report Generated: "+generated.Format(longDate))
	d.centered(9, 13, "Session ID: "+v.SessionID)
	d.pdf.Ln(12)
}

func (d *doc) summary(v *models.Verification, envelope *models.ProviderData, responseCol column) {
	d.sectionHeader("Verification Summary")

	var envVerified, envGUID, envShort, envSource, envCenter, envReqTS, envRespTS string
	if envelope != nil {
		envVerified = envelope.Verified
		envGUID = envelope.TransactionGUID
		envShort = envelope.ShortGUID
		envSource = envelope.Source
		envCenter = envelope.Center
		envReqTS = envelope.RequestTimestamp
		envRespTS = envelope.ResponseTimestamp
	}
	var respCode, respNestedGUID string
	if responseCol.root != nil {
		respCode = responseCol.root.Code.String()
	}
	if responseCol.data != nil {
		respNestedGUID = responseCol.data.TransactionGUID
	}

	d.field("Status", statusText(v.Status), 0)
	d.field("Verified", firstValue(v.Verified, envVerified, "N/A"), 0)
	d.field("Verification Date", v.CreatedAt.Format(longDate), 0)
	d.field("Response Code", firstValue(v.Code, respCode, "N/A"), 0)
	d.field("Transaction ID", firstValue(v.TransactionGUID, envGUID, respNestedGUID), 0)

	if envelope != nil {
		d.field("Short Reference", envShort, 0)
		d.field("Source", envSource, 0)
		d.field("Center", envCenter, 0)
		d.field("Request Time", formatTimestamp(envReqTS), 0)
		d.field("Response Time", formatTimestamp(envRespTS), 0)
	}
}

func (d *doc) userInfo(v *models.Verification, envelope *models.ProviderData, person *models.Person) {
	d.sectionHeader("User Information")

	var envUserID, personPIN string
	if envelope != nil {
		envUserID = envelope.UserID
	}
	if person != nil {
		personPIN = person.NationalID
	}

	d.field("Full Name", firstValue(v.Name, envUserID), 0)
	d.field("Email Address", v.Email, 0)
	d.field("Ghana Card PIN", firstValue(v.PINNumber, personPIN), 0)
}

func (d *doc) errorDetails(v *models.Verification, responseCol column) {
	if v.Status != models.StatusFailed || responseCol.root == nil {
		return
	}
	msg := firstValue(responseCol.root.Message, responseCol.root.Msg)
	if msg == "" {
		return
	}

	d.sectionHeader("Error Details")
	d.pdf.SetFont("Helvetica", "", 10)
	d.setTextColor(errorColor)
	d.pdf.MultiCell(0, 14, d.tr("Reason: "+msg), "", "L", false)
	d.setTextColor(darkColor)
}

func (d *doc) identityCard(person *models.Person) {
	d.sectionHeader("Ghana Card Information")
	d.subHeader("Personal Details")

	d.field("National ID", person.NationalID, 0)
	d.field("Card ID", person.CardID, 0)
	d.field("Surname", person.Surname, 0)
	d.field("Forenames", person.Forenames, 0)
	d.field("Date of Birth", person.BirthDate, 0)
	d.field("Gender", person.Gender, 0)
	d.field("Nationality", person.Nationality, 0)
	d.field("Card Valid From", person.CardValidFrom, 0)
	d.field("Card Valid To", person.CardValidTo, 0)

	if len(person.Addresses) == 0 {
		return
	}

	d.pdf.Ln(6)
	d.subHeader("Address Information")

	for i, addr := range person.Addresses {
		label := addr.Type
		if !renderable(label) {
			label = fmt.Sprintf("Address %d", i+1)
		}
		d.pdf.SetFont("Helvetica", "B", 10)
		d.setTextColor(grayColor)
		d.pdf.CellFormat(0, 14, d.tr(label+":"), "", 1, "L", false, 0, "")
		d.pdf.Ln(2)

		d.field("Street", addr.Street, 20)
		d.field("Town", addr.Town, 20)
		d.field("Community", addr.Community, 20)
		d.field("District", addr.DistrictName, 20)
		d.field("Region", addr.Region, 20)
		d.field("Country", addr.CountryName, 20)
		d.field("Postal Code", addr.PostalCode, 20)
		d.field("Digital Address", addr.AddressDigital, 20)
		if addr.GPSAddressDetails != nil {
			d.field("GPS Address", addr.GPSAddressDetails.GPSName, 20)
		}
		d.pdf.Ln(4)
	}
}

func statusText(status string) string {
	if status == models.StatusApproved {
		return "APPROVED"
	}
	return "FAILED"
}

// formatTimestamp renders provider timestamps in the report's long date
// format, passing unparseable values through untouched.
func formatTimestamp(ts string) string {
	if ts == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.Format(longDateSeconds)
		}
	}
	return ts
}
