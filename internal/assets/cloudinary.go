// Copyright 2025 M'Cube Collections
// Licensed under the EUPL-1.2

// Package assets talks to the external asset host holding selfie photos.
package assets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/mcubecollections/selfie-verification/internal/config"
)

// Cloudinary uploads selfie images and returns their public URL.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
	now    func() time.Time
}

// NewCloudinary creates an uploader from the configured credentials.
func NewCloudinary(cfg config.CloudinaryConfig) (*Cloudinary, error) {
	if !cfg.Configured() {
		return nil, errors.New("cloudinary credentials are not configured")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("creating cloudinary client: %w", err)
	}
	return &Cloudinary{cld: cld, folder: cfg.Folder, now: time.Now}, nil
}

// UploadSelfie stores a base64 encoded selfie image and returns its secure
// URL. The public id embeds the verification session id so the photo can be
// traced back to its record.
func (c *Cloudinary) UploadSelfie(ctx context.Context, imageBase64, sessionID string) (string, error) {
	if imageBase64 == "" {
		return "", errors.New("no image provided")
	}

	// The SDK expects a data URI for inline base64 content.
	file := imageBase64
	if !strings.HasPrefix(file, "data:") {
		file = "data:image/png;base64," + file
	}

	resp, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         c.folder,
		PublicID:       fmt.Sprintf("selfie_%s_%d", sessionID, c.now().UnixMilli()),
		ResourceType:   "image",
		Transformation: "c_limit,w_800,h_800/q_auto:good/f_auto",
	})
	if err != nil {
		return "", fmt.Errorf("uploading selfie: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("uploading selfie: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}
