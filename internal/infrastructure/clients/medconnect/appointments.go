package medconnect

import (
	"context"
	"fmt"
	"net/url"

	"github.com/medconnect/medconnect-client/internal/domain/entities"
)

// AppointmentRequest is the payload for creating or updating a personal
// appointment
type AppointmentRequest struct {
	DoctorName           string `json:"doctor_name"`
	DoctorSpecialization string `json:"doctor_specialization,omitempty"`
	AppointmentDate      string `json:"appointment_date"`
	Address              string `json:"address"`
	Reason               string `json:"reason"`
	Notes                string `json:"notes,omitempty"`
	Status               string `json:"status,omitempty"`
}

// ListAppointments returns the session patient's appointments
func (c *HTTPClient) ListAppointments(ctx context.Context) ([]entities.Appointment, error) {
	var out struct {
		envelope
		Appointments []entities.Appointment `json:"appointments"`
	}
	if err := c.getJSON(ctx, "/api/appointments/", nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, out.failure("failed to fetch appointments")
	}
	return out.Appointments, nil
}

// CreateAppointment books a new personal appointment
func (c *HTTPClient) CreateAppointment(ctx context.Context, req AppointmentRequest) error {
	var out envelope
	if err := c.postJSON(ctx, "/api/appointments/create/", req, &out); err != nil {
		return err
	}
	if !out.Success {
		return out.failure("failed to create appointment")
	}
	return nil
}

// UpdateAppointment modifies an existing appointment
func (c *HTTPClient) UpdateAppointment(ctx context.Context, appointmentID string, req AppointmentRequest) error {
	var out envelope
	if err := c.putJSON(ctx, fmt.Sprintf("/api/appointments/%s/update/", url.PathEscape(appointmentID)), req, &out); err != nil {
		return err
	}
	if !out.Success {
		return out.failure("failed to update appointment")
	}
	return nil
}

// DeleteAppointment cancels an appointment
func (c *HTTPClient) DeleteAppointment(ctx context.Context, appointmentID string) error {
	var out envelope
	if err := c.deleteJSON(ctx, fmt.Sprintf("/api/appointments/%s/delete/", url.PathEscape(appointmentID)), &out); err != nil {
		return err
	}
	if !out.Success {
		return out.failure("failed to delete appointment")
	}
	return nil
}
