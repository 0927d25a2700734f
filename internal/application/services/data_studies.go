package services

import (
	"context"
	"io"

	"github.com/medconnect/medconnect-client/internal/domain/entities"
	"github.com/medconnect/medconnect-client/internal/infrastructure/clients/medconnect"
)

// NewStudy is the input for creating a clinical trial
type NewStudy struct {
	Title               string
	Description         string
	Phase               string
	Status              string
	Location            string
	EligibilityCriteria string
	PrimaryEndpoint     string
	EstimatedEnrollment int
	StartDate           string
	CompletionDate      string
	Compensation        string
}

// FetchStudies refreshes the studies collection and returns it. No session
// is required; study listings are public. On failure the previous collection
// is returned unchanged.
func (s *DataService) FetchStudies(ctx context.Context) []entities.ClinicalTrial {
	studies, err := s.api.ListStudies(ctx)
	if err != nil {
		s.opLogger(ctx, "fetch_studies").Error().Err(err).Msg("fetch failed")
		return s.ClinicalTrials()
	}

	s.mu.Lock()
	s.clinicalTrials = studies
	s.mu.Unlock()
	return s.ClinicalTrials()
}

// FetchUserStudies refreshes the session user's studies
func (s *DataService) FetchUserStudies(ctx context.Context) []entities.ClinicalTrial {
	if s.requireUser(ctx, "fetch_user_studies") == nil {
		return s.UserStudies()
	}

	studies, err := s.api.ListUserStudies(ctx)
	if err != nil {
		s.opLogger(ctx, "fetch_user_studies").Error().Err(err).Msg("fetch failed")
		return s.UserStudies()
	}

	s.mu.Lock()
	s.userTrials = studies
	s.mu.Unlock()
	return s.UserStudies()
}

// StudyByID fetches a single study's detail from the backend. Returns nil
// when the study cannot be fetched.
func (s *DataService) StudyByID(ctx context.Context, studyID string) *entities.ClinicalTrial {
	study, err := s.api.GetStudy(ctx, studyID)
	if err != nil {
		s.opLogger(ctx, "get_study").Error().Err(err).Str("study_id", studyID).Msg("fetch failed")
		return nil
	}
	return study
}

// CreateClinicalTrial creates a study owned by the session researcher and
// refreshes both study collections.
func (s *DataService) CreateClinicalTrial(ctx context.Context, study NewStudy) bool {
	if s.requireResearcher(ctx, "create_study") == nil {
		return false
	}

	payload := map[string]any{
		"title":                study.Title,
		"description":          study.Description,
		"phase":                study.Phase,
		"status":               study.Status,
		"location":             study.Location,
		"eligibility_criteria": study.EligibilityCriteria,
		"primary_endpoint":     study.PrimaryEndpoint,
		"estimated_enrollment": study.EstimatedEnrollment,
		"start_date":           study.StartDate,
		"completion_date":      study.CompletionDate,
		"compensation":         study.Compensation,
	}
	if err := s.api.CreateStudy(ctx, payload); err != nil {
		s.opLogger(ctx, "create_study").Error().Err(err).Msg("create failed")
		return false
	}

	s.FetchStudies(ctx)
	s.FetchUserStudies(ctx)
	return true
}

// ApplyToStudy submits the session user's application and refreshes the
// user's studies so the new participation shows up.
func (s *DataService) ApplyToStudy(ctx context.Context, studyID string) bool {
	if s.requireUser(ctx, "apply_to_study") == nil {
		return false
	}

	if err := s.api.ApplyToStudy(ctx, studyID); err != nil {
		s.opLogger(ctx, "apply_to_study").Error().Err(err).Str("study_id", studyID).Msg("apply failed")
		return false
	}

	s.FetchUserStudies(ctx)
	return true
}

// FetchStudyApplicants returns a study's applicants. The result is not kept
// in a collection; callers hold it for the study they are viewing.
func (s *DataService) FetchStudyApplicants(ctx context.Context, studyID string) []entities.StudyApplicant {
	applicants, err := s.api.ListStudyApplicants(ctx, studyID)
	if err != nil {
		s.opLogger(ctx, "fetch_study_applicants").Error().Err(err).Str("study_id", studyID).Msg("fetch failed")
		return nil
	}
	return applicants
}

// UpdateApplicantStatus moves a participation through its state machine.
// action is one of approve, reject, enroll, withdraw.
func (s *DataService) UpdateApplicantStatus(ctx context.Context, participationID, action, notes string) bool {
	if err := s.api.UpdateApplicantStatus(ctx, participationID, action, notes); err != nil {
		s.opLogger(ctx, "update_applicant_status").Error().Err(err).
			Str("participation_id", participationID).
			Str("action", action).
			Msg("update failed")
		return false
	}
	return true
}

// FetchStudyDocuments returns a study's attached documents
func (s *DataService) FetchStudyDocuments(ctx context.Context, studyID string) []entities.StudyDocument {
	documents, err := s.api.ListStudyDocuments(ctx, studyID)
	if err != nil {
		s.opLogger(ctx, "fetch_study_documents").Error().Err(err).Str("study_id", studyID).Msg("fetch failed")
		return nil
	}
	return documents
}

// UploadStudyDocument attaches a file to a study
func (s *DataService) UploadStudyDocument(ctx context.Context, studyID, filename string, content io.Reader, name, docType string) bool {
	if err := s.api.UploadStudyDocument(ctx, studyID, filename, content, name, docType); err != nil {
		s.opLogger(ctx, "upload_study_document").Error().Err(err).Str("study_id", studyID).Msg("upload failed")
		return false
	}
	return true
}

// DeleteStudyDocument removes a study document
func (s *DataService) DeleteStudyDocument(ctx context.Context, documentID string) bool {
	if err := s.api.DeleteStudyDocument(ctx, documentID); err != nil {
		s.opLogger(ctx, "delete_study_document").Error().Err(err).Str("document_id", documentID).Msg("delete failed")
		return false
	}
	return true
}

// FetchStudyAppointments returns the visits scheduled for a study
func (s *DataService) FetchStudyAppointments(ctx context.Context, studyID string) []entities.StudyAppointment {
	appointments, err := s.api.ListStudyAppointments(ctx, studyID)
	if err != nil {
		s.opLogger(ctx, "fetch_study_appointments").Error().Err(err).Str("study_id", studyID).Msg("fetch failed")
		return nil
	}
	return appointments
}

// CreateStudyAppointment schedules a study visit for a patient
func (s *DataService) CreateStudyAppointment(ctx context.Context, studyID string, req medconnect.StudyAppointmentRequest) bool {
	if err := s.api.CreateStudyAppointment(ctx, studyID, req); err != nil {
		s.opLogger(ctx, "create_study_appointment").Error().Err(err).Str("study_id", studyID).Msg("create failed")
		return false
	}
	return true
}
