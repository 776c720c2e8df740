// Copyright 2025 M'Cube Collections
// Licensed under the EUPL-1.2

// Package verifier normalizes requests to and responses from the external
// face-match provider into a canonical result. Without provider credentials
// it runs a deterministic mock outside production.
package verifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mcubecollections/selfie-verification/internal/config"
	"github.com/mcubecollections/selfie-verification/internal/models"
)

const (
	providerPath   = "/api/v1/third-party/verification/base_64"
	requestTimeout = 15 * time.Second

	// maxImageBytes bounds the decoded selfie size.
	maxImageBytes = 1 << 20

	codeApproved = "00"
	codeDenied   = "01"
)

// ErrValidation marks rejected input; it is surfaced to the submitting user
// before any external call.
var ErrValidation = errors.New("invalid verification input")

// Outcome distinguishes the four possible results of a verification call.
// A transport failure must never be confused with a legitimate denial.
type Outcome int

const (
	OutcomeApproved Outcome = iota
	OutcomeDenied
	OutcomeTransportFailure
	OutcomeConfigurationMissing
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApproved:
		return "approved"
	case OutcomeDenied:
		return "denied"
	case OutcomeTransportFailure:
		return "transport_failure"
	case OutcomeConfigurationMissing:
		return "configuration_missing"
	}
	return "unknown"
}

// Request is one verification attempt as submitted by the user.
type Request struct {
	PINNumber   string
	ImageBase64 string
	Name        string
}

// Result is the canonical verification result, independent of the shape the
// provider happened to return.
type Result struct { //nolint:govet // fieldalignment: readability over optimization
	Outcome         Outcome
	Status          string // "approved" or "failed"
	Code            string
	Verified        string // upper-cased provider flag
	Success         bool
	TransactionGUID string
	Person          *models.Person
	Raw             json.RawMessage
	Cause           error // set for OutcomeTransportFailure
}

// Client calls the provider, or mocks it when unconfigured.
type Client struct {
	cfg        config.ProviderConfig
	production bool
	httpClient *http.Client
	now        func() time.Time
}

// New creates a verification client. In production a missing provider
// configuration yields OutcomeConfigurationMissing on every call.
func New(cfg config.ProviderConfig, production bool) *Client {
	return &Client{
		cfg:        cfg,
		production: production,
		httpClient: &http.Client{Timeout: requestTimeout},
		now:        time.Now,
	}
}

// Verify validates the request and runs it against the provider or the
// mock. Only input validation is reported through the error return; all
// provider-path outcomes are tagged on the Result.
func (c *Client) Verify(ctx context.Context, req Request) (*Result, error) {
	req.PINNumber = strings.TrimSpace(req.PINNumber)
	req.ImageBase64 = strings.TrimSpace(req.ImageBase64)
	req.Name = strings.TrimSpace(req.Name)

	if req.PINNumber == "" || req.ImageBase64 == "" {
		return nil, fmt.Errorf("%w: missing national id number or selfie image", ErrValidation)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: missing user name", ErrValidation)
	}
	if approxDecodedSize(len(req.ImageBase64)) > maxImageBytes {
		return nil, fmt.Errorf("%w: selfie image is too large; it must be less than 1MB", ErrValidation)
	}

	if !c.cfg.Configured() {
		if c.production {
			return &Result{Outcome: OutcomeConfigurationMissing, Status: models.StatusFailed}, nil
		}
		return c.mock(req), nil
	}

	return c.live(ctx, req), nil
}

// approxDecodedSize computes the decoded byte count implied by a base64
// encoded length, rounded up.
func approxDecodedSize(encodedLen int) int {
	return (encodedLen*3 + 3) / 4
}

// mock deterministically approves unless the PIN asks for failure.
func (c *Client) mock(req Request) *Result {
	now := c.now()
	upper := strings.ToUpper(req.PINNumber)
	approved := !strings.Contains(upper, "FAIL") && !strings.Contains(upper, "TEST-FAIL")

	raw, _ := json.Marshal(map[string]any{
		"mock":       true,
		"pinNumber":  req.PINNumber,
		"userName":   req.Name,
		"isApproved": approved,
		"timestamp":  now.UTC().Format(time.RFC3339),
	})

	res := &Result{
		Outcome:         OutcomeDenied,
		Status:          models.StatusFailed,
		Code:            codeDenied,
		Verified:        "FALSE",
		TransactionGUID: fmt.Sprintf("dev_%d", now.UnixMilli()),
		Raw:             raw,
	}
	if approved {
		res.Outcome = OutcomeApproved
		res.Status = models.StatusApproved
		res.Code = codeApproved
		res.Verified = "TRUE"
		res.Success = true
		res.Person = &models.Person{
			FullName:  req.Name,
			PINNumber: req.PINNumber,
		}
	}
	return res
}

// providerRequest is the fixed payload shape the provider expects.
type providerRequest struct {
	PINNumber   string `json:"pinNumber"`
	Image       string `json:"image"`
	DataType    string `json:"dataType"`
	Center      string `json:"center"`
	UserID      string `json:"userID"`
	MerchantKey string `json:"merchantKey"`
}

// live performs the provider call. Network errors and non-2xx responses are
// tagged as transport failures and never retried.
func (c *Client) live(ctx context.Context, req Request) *Result {
	payload := providerRequest{
		PINNumber:   req.PINNumber,
		Image:       req.ImageBase64,
		DataType:    c.cfg.DataType,
		Center:      c.cfg.Center,
		UserID:      req.Name,
		MerchantKey: c.cfg.MerchantKey,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return transportFailure(err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + providerPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return transportFailure(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return transportFailure(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportFailure(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return transportFailure(fmt.Errorf("provider returned status %d", resp.StatusCode))
	}

	return normalize(raw)
}

func transportFailure(cause error) *Result {
	return &Result{
		Outcome: OutcomeTransportFailure,
		Status:  models.StatusFailed,
		Cause:   cause,
	}
}

// normalize maps the provider response onto the canonical result. The
// payload may sit at the top level or under a "data" envelope; the chain
// tries the envelope first.
func normalize(raw []byte) *Result {
	var root models.ProviderData
	var wrapper struct {
		Data *models.ProviderData `json:"data"`
	}
	if err := json.Unmarshal(raw, &root); err != nil {
		return transportFailure(fmt.Errorf("malformed provider response: %w", err))
	}
	_ = json.Unmarshal(raw, &wrapper)

	chain := newSourceChain(wrapper.Data, &root)

	code := chain.firstString(func(p *models.ProviderData) string { return p.Code.String() })
	verified := strings.ToUpper(chain.firstString(func(p *models.ProviderData) string { return p.Verified }))
	success := chain.firstBool(func(p *models.ProviderData) *bool { return p.Success })
	guid := chain.firstString(func(p *models.ProviderData) string { return p.TransactionGUID })
	person := chain.firstPerson()

	approved := code == codeApproved && (verified == "TRUE" || verified == "YES" || success)

	res := &Result{
		Outcome:         OutcomeDenied,
		Status:          models.StatusFailed,
		Code:            code,
		Verified:        verified,
		Success:         success,
		TransactionGUID: guid,
		Raw:             json.RawMessage(raw),
	}
	if approved {
		res.Outcome = OutcomeApproved
		res.Status = models.StatusApproved
		res.Person = person
	}
	return res
}

// sourceChain is the ordered list of payload locations to inspect; the
// first location yielding a value wins.
type sourceChain []*models.ProviderData

func newSourceChain(locations ...*models.ProviderData) sourceChain {
	var c sourceChain
	for _, p := range locations {
		if p != nil {
			c = append(c, p)
		}
	}
	return c
}

func (c sourceChain) firstString(get func(*models.ProviderData) string) string {
	for _, p := range c {
		if v := get(p); v != "" {
			return v
		}
	}
	return ""
}

func (c sourceChain) firstBool(get func(*models.ProviderData) *bool) bool {
	for _, p := range c {
		if v := get(p); v != nil {
			return *v
		}
	}
	return false
}

func (c sourceChain) firstPerson() *models.Person {
	for _, p := range c {
		if p.Person != nil {
			return p.Person
		}
	}
	return nil
}
