package services

import (
	"context"
	"io"

	"github.com/medconnect/medconnect-client/internal/domain/entities"
	"github.com/medconnect/medconnect-client/internal/infrastructure/clients/medconnect"
	apperrors "github.com/medconnect/medconnect-client/pkg/errors"
)

// FetchProfile refreshes the session user's full profile. If the backend
// rejects the session cookie the session is invalidated so the caller falls
// back to anonymous instead of looping on stale credentials.
func (s *DataService) FetchProfile(ctx context.Context) *entities.Profile {
	if s.requireUser(ctx, "fetch_profile") == nil {
		return s.Profile()
	}

	profile, err := s.api.GetProfile(ctx)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeUnauthorized) {
			s.opLogger(ctx, "fetch_profile").Warn().Msg("session rejected, invalidating")
			s.sessions.Invalidate()
			return nil
		}
		s.opLogger(ctx, "fetch_profile").Error().Err(err).Msg("fetch failed")
		return s.Profile()
	}

	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()
	return s.Profile()
}

// UpdateProfile sends a partial profile update (snake_case server field
// names) and refetches the merged result.
func (s *DataService) UpdateProfile(ctx context.Context, partial map[string]any) bool {
	if err := s.api.UpdateProfile(ctx, partial); err != nil {
		s.opLogger(ctx, "update_profile").Error().Err(err).Msg("update failed")
		return false
	}

	s.FetchProfile(ctx)
	return true
}

// UploadProfilePicture replaces the user's profile picture and refetches the
// profile so the new URL comes back from the server.
func (s *DataService) UploadProfilePicture(ctx context.Context, filename string, content io.Reader) bool {
	if err := s.api.UploadProfilePicture(ctx, filename, content); err != nil {
		s.opLogger(ctx, "upload_profile_picture").Error().Err(err).Msg("upload failed")
		return false
	}

	s.FetchProfile(ctx)
	return true
}

// SearchPatients runs a patient search and keeps the matches as the current
// patient results. The server enforces that only researchers may search.
func (s *DataService) SearchPatients(ctx context.Context, filters entities.SearchFilters) []entities.PatientMatch {
	matches, err := s.api.SearchPatients(ctx, filters)
	if err != nil {
		s.opLogger(ctx, "search_patients").Error().Err(err).Msg("search failed")
		return s.PatientMatches()
	}

	s.mu.Lock()
	s.patientMatches = matches
	s.mu.Unlock()
	return s.PatientMatches()
}

// SearchResearchers runs a researcher search and keeps the matches as the
// current researcher results.
func (s *DataService) SearchResearchers(ctx context.Context, filters entities.SearchFilters) []entities.ResearcherMatch {
	matches, err := s.api.SearchResearchers(ctx, filters)
	if err != nil {
		s.opLogger(ctx, "search_researchers").Error().Err(err).Msg("search failed")
		return s.ResearcherMatches()
	}

	s.mu.Lock()
	s.researcherMatches = matches
	s.mu.Unlock()
	return s.ResearcherMatches()
}

// FetchContactRequests refreshes the session user's contact requests: sent
// ones for researchers, received ones for patients.
func (s *DataService) FetchContactRequests(ctx context.Context) []entities.ContactRequest {
	if s.requireUser(ctx, "fetch_contact_requests") == nil {
		return s.ContactRequests()
	}

	requests, err := s.api.ListContactRequests(ctx)
	if err != nil {
		s.opLogger(ctx, "fetch_contact_requests").Error().Err(err).Msg("fetch failed")
		return s.ContactRequests()
	}

	s.mu.Lock()
	s.contactRequests = requests
	s.mu.Unlock()
	return s.ContactRequests()
}

// SendContactRequest sends a researcher-to-patient contact request and
// refreshes the requests collection.
func (s *DataService) SendContactRequest(ctx context.Context, patientID, message string) bool {
	if s.requireResearcher(ctx, "send_contact_request") == nil {
		return false
	}

	if err := s.api.SendContactRequest(ctx, patientID, message); err != nil {
		s.opLogger(ctx, "send_contact_request").Error().Err(err).Str("patient_id", patientID).Msg("send failed")
		return false
	}

	s.FetchContactRequests(ctx)
	return true
}

// RespondToContactRequest accepts or declines a pending request (response is
// "accept" or "decline") and refreshes the requests collection.
func (s *DataService) RespondToContactRequest(ctx context.Context, requestID, response string) bool {
	if s.requirePatient(ctx, "respond_to_contact_request") == nil {
		return false
	}

	if err := s.api.RespondToContactRequest(ctx, requestID, response); err != nil {
		s.opLogger(ctx, "respond_to_contact_request").Error().Err(err).Str("request_id", requestID).Msg("respond failed")
		return false
	}

	s.FetchContactRequests(ctx)
	return true
}

// FetchAppointments refreshes the patient's personal appointments
func (s *DataService) FetchAppointments(ctx context.Context) []entities.Appointment {
	if s.requirePatient(ctx, "fetch_appointments") == nil {
		return s.Appointments()
	}

	appointments, err := s.api.ListAppointments(ctx)
	if err != nil {
		s.opLogger(ctx, "fetch_appointments").Error().Err(err).Msg("fetch failed")
		return s.Appointments()
	}

	s.mu.Lock()
	s.appointments = appointments
	s.mu.Unlock()
	return s.Appointments()
}

// CreateAppointment books a personal appointment and refreshes the collection
func (s *DataService) CreateAppointment(ctx context.Context, req medconnect.AppointmentRequest) bool {
	if s.requirePatient(ctx, "create_appointment") == nil {
		return false
	}

	if err := s.api.CreateAppointment(ctx, req); err != nil {
		s.opLogger(ctx, "create_appointment").Error().Err(err).Msg("create failed")
		return false
	}

	s.FetchAppointments(ctx)
	return true
}

// UpdateAppointment modifies an appointment and refreshes the collection
func (s *DataService) UpdateAppointment(ctx context.Context, appointmentID string, req medconnect.AppointmentRequest) bool {
	if s.requirePatient(ctx, "update_appointment") == nil {
		return false
	}

	if err := s.api.UpdateAppointment(ctx, appointmentID, req); err != nil {
		s.opLogger(ctx, "update_appointment").Error().Err(err).Str("appointment_id", appointmentID).Msg("update failed")
		return false
	}

	s.FetchAppointments(ctx)
	return true
}

// CancelAppointment cancels an appointment and refreshes the collection
func (s *DataService) CancelAppointment(ctx context.Context, appointmentID string) bool {
	if s.requirePatient(ctx, "cancel_appointment") == nil {
		return false
	}

	if err := s.api.DeleteAppointment(ctx, appointmentID); err != nil {
		s.opLogger(ctx, "cancel_appointment").Error().Err(err).Str("appointment_id", appointmentID).Msg("cancel failed")
		return false
	}

	s.FetchAppointments(ctx)
	return true
}
