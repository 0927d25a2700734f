package medconnect

import (
	"context"
	"fmt"
	"net/url"

	"github.com/medconnect/medconnect-client/internal/domain/entities"
)

// ListContactRequests returns the session user's contact requests: sent ones
// for researchers, received ones for patients.
func (c *HTTPClient) ListContactRequests(ctx context.Context) ([]entities.ContactRequest, error) {
	var out struct {
		envelope
		ContactRequests []entities.ContactRequest `json:"contact_requests"`
	}
	if err := c.getJSON(ctx, "/api/contact-requests/", nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, out.failure("failed to fetch contact requests")
	}
	return out.ContactRequests, nil
}

// SendContactRequest sends a researcher-to-patient contact request
func (c *HTTPClient) SendContactRequest(ctx context.Context, patientID, message string) error {
	var out envelope
	body := map[string]string{"message": message}
	if err := c.postJSON(ctx, fmt.Sprintf("/api/contact-request/%s/", url.PathEscape(patientID)), body, &out); err != nil {
		return err
	}
	if !out.Success {
		return out.failure("failed to send contact request")
	}
	return nil
}

// RespondToContactRequest accepts or declines a pending request.
// response must be "accept" or "decline"; the transition is terminal.
func (c *HTTPClient) RespondToContactRequest(ctx context.Context, requestID, response string) error {
	var out envelope
	body := map[string]string{"response": response}
	if err := c.putJSON(ctx, fmt.Sprintf("/api/contact-request/%s/respond/", url.PathEscape(requestID)), body, &out); err != nil {
		return err
	}
	if !out.Success {
		return out.failure("failed to respond to contact request")
	}
	return nil
}
