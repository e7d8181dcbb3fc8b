package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorage implements ports.MediaStorage against the Cloudinary
// upload API.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinary(cloudName, apiKey, apiSecret string) (*CloudinaryStorage, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryStorage{cld: cld}, nil
}

// Upload sends the local file to Cloudinary and returns the stored
// resource's HTTPS URL.
func (s *CloudinaryStorage) Upload(ctx context.Context, localPath string) (string, error) {
	resp, err := s.cld.Upload.Upload(ctx, localPath, uploader.UploadParams{ResourceType: "auto"})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.SecureURL == "" {
		return "", errors.New("cloudinary upload: empty response URL")
	}
	return resp.SecureURL, nil
}

// Delete destroys the resource the URL points at.
func (s *CloudinaryStorage) Delete(ctx context.Context, resourceURL string) error {
	publicID, err := publicIDFromURL(resourceURL)
	if err != nil {
		return err
	}
	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy: %s", resp.Result)
	}
	return nil
}

// publicIDFromURL recovers the public id from a delivery URL of the form
// https://res.cloudinary.com/<cloud>/<type>/upload/v<version>/<public_id>.<ext>
func publicIDFromURL(resourceURL string) (string, error) {
	u, err := url.Parse(resourceURL)
	if err != nil {
		return "", fmt.Errorf("parse resource url: %w", err)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, seg := range segments {
		if seg != "upload" || i+1 >= len(segments) {
			continue
		}
		rest := segments[i+1:]
		// Skip the version segment when present.
		if strings.HasPrefix(rest[0], "v") && len(rest) > 1 {
			rest = rest[1:]
		}
		id := strings.Join(rest, "/")
		return strings.TrimSuffix(id, path.Ext(id)), nil
	}
	return "", fmt.Errorf("unrecognised resource url: %s", resourceURL)
}
