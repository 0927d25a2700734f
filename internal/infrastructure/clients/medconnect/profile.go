package medconnect

import (
	"context"
	"io"

	"github.com/medconnect/medconnect-client/internal/domain/entities"
)

// GetProfile fetches the authenticated user's full profile
func (c *HTTPClient) GetProfile(ctx context.Context) (*entities.Profile, error) {
	var out struct {
		envelope
		Profile *entities.Profile `json:"profile"`
	}
	if err := c.getJSON(ctx, "/api/profile/", nil, &out); err != nil {
		return nil, err
	}
	if !out.Success || out.Profile == nil {
		return nil, out.failure("failed to fetch profile")
	}
	return out.Profile, nil
}

// UpdateProfile sends a partial profile update; the server merges it
func (c *HTTPClient) UpdateProfile(ctx context.Context, partial map[string]any) error {
	var out envelope
	if err := c.putJSON(ctx, "/api/profile/update/", partial, &out); err != nil {
		return err
	}
	if !out.Success {
		return out.failure("failed to update profile")
	}
	return nil
}

// UploadProfilePicture uploads a new profile picture as multipart form data
func (c *HTTPClient) UploadProfilePicture(ctx context.Context, filename string, content io.Reader) error {
	var out envelope
	files := []Attachment{{FieldName: "profile_picture", Filename: filename, Content: content}}
	if err := c.postMultipart(ctx, "/api/profile/upload-picture/", nil, files, &out); err != nil {
		return err
	}
	if !out.Success {
		return out.failure("failed to upload profile picture")
	}
	return nil
}
