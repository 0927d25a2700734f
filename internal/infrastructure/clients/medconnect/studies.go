package medconnect

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/medconnect/medconnect-client/internal/domain/entities"
)

// StudyAppointmentRequest is the payload for scheduling a study visit
type StudyAppointmentRequest struct {
	PatientID            string `json:"patient_id"`
	AppointmentDate      string `json:"appointment_date"`
	DoctorName           string `json:"doctor_name,omitempty"`
	DoctorSpecialization string `json:"doctor_specialization,omitempty"`
	Address              string `json:"address,omitempty"`
	Reason               string `json:"reason,omitempty"`
	Notes                string `json:"notes,omitempty"`
}

// ListStudies returns every study on the platform
func (c *HTTPClient) ListStudies(ctx context.Context) ([]entities.ClinicalTrial, error) {
	var out struct {
		envelope
		Studies []entities.ClinicalTrial `json:"studies"`
	}
	if err := c.getJSON(ctx, "/api/studies/", nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, out.failure("failed to fetch studies")
	}
	return out.Studies, nil
}

// ListUserStudies returns the studies tied to the session user: applied-to
// studies for patients, owned studies for researchers.
func (c *HTTPClient) ListUserStudies(ctx context.Context) ([]entities.ClinicalTrial, error) {
	var out struct {
		envelope
		Studies []entities.ClinicalTrial `json:"studies"`
	}
	if err := c.getJSON(ctx, "/api/user/studies/", nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, out.failure("failed to fetch user studies")
	}
	return out.Studies, nil
}

// GetStudy returns a single study's detail
func (c *HTTPClient) GetStudy(ctx context.Context, studyID string) (*entities.ClinicalTrial, error) {
	var out struct {
		envelope
		Study *entities.ClinicalTrial `json:"study"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/api/studies/%s/", url.PathEscape(studyID)), nil, &out); err != nil {
		return nil, err
	}
	if !out.Success || out.Study == nil {
		return nil, out.failure("failed to fetch study")
	}
	return out.Study, nil
}

// CreateStudy creates a new study owned by the session researcher
func (c *HTTPClient) CreateStudy(ctx context.Context, study map[string]any) error {
	var out envelope
	if err := c.postJSON(ctx, "/api/studies/create/", study, &out); err != nil {
		return err
	}
	if !out.Success {
		return out.failure("failed to create study")
	}
	return nil
}

// ApplyToStudy submits the session patient's application to a study
func (c *HTTPClient) ApplyToStudy(ctx context.Context, studyID string) error {
	var out envelope
	if err := c.postJSON(ctx, fmt.Sprintf("/api/studies/%s/apply/", url.PathEscape(studyID)), struct{}{}, &out); err != nil {
		return err
	}
	if !out.Success {
		return out.failure("failed to apply to study")
	}
	return nil
}

// ListStudyApplicants returns everyone who applied to a study
func (c *HTTPClient) ListStudyApplicants(ctx context.Context, studyID string) ([]entities.StudyApplicant, error) {
	var out struct {
		envelope
		Applicants []entities.StudyApplicant `json:"applicants"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/api/studies/%s/applicants/", url.PathEscape(studyID)), nil, &out); err != nil {
		return nil, err
	}
	return out.Applicants, nil
}

// UpdateApplicantStatus moves a participation through its state machine.
// Valid actions: approve, reject, enroll, withdraw.
func (c *HTTPClient) UpdateApplicantStatus(ctx context.Context, participationID, action, notes string) error {
	body := map[string]string{"action": action}
	if notes != "" {
		body["notes"] = notes
	}
	var out envelope
	if err := c.postJSON(ctx, fmt.Sprintf("/api/participations/%s/status/", url.PathEscape(participationID)), body, &out); err != nil {
		return err
	}
	if !out.Success {
		return out.failure("failed to update applicant status")
	}
	return nil
}

// ListStudyDocuments returns the files attached to a study
func (c *HTTPClient) ListStudyDocuments(ctx context.Context, studyID string) ([]entities.StudyDocument, error) {
	var out struct {
		envelope
		Documents []entities.StudyDocument `json:"documents"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/api/studies/%s/documents/", url.PathEscape(studyID)), nil, &out); err != nil {
		return nil, err
	}
	return out.Documents, nil
}

// UploadStudyDocument attaches a file to a study via multipart form data
func (c *HTTPClient) UploadStudyDocument(ctx context.Context, studyID, filename string, content io.Reader, name, docType string) error {
	fields := map[string]string{}
	if name != "" {
		fields["name"] = name
	}
	if docType != "" {
		fields["doc_type"] = docType
	}
	files := []Attachment{{FieldName: "file", Filename: filename, Content: content}}

	var out envelope
	if err := c.postMultipart(ctx, fmt.Sprintf("/api/studies/%s/documents/", url.PathEscape(studyID)), fields, files, &out); err != nil {
		return err
	}
	if !out.Success {
		return out.failure("failed to upload study document")
	}
	return nil
}

// DeleteStudyDocument removes a study document
func (c *HTTPClient) DeleteStudyDocument(ctx context.Context, documentID string) error {
	var out envelope
	if err := c.deleteJSON(ctx, fmt.Sprintf("/api/documents/%s/delete/", url.PathEscape(documentID)), &out); err != nil {
		return err
	}
	if !out.Success {
		return out.failure("failed to delete study document")
	}
	return nil
}

// ListStudyAppointments returns the visits scheduled for a study
func (c *HTTPClient) ListStudyAppointments(ctx context.Context, studyID string) ([]entities.StudyAppointment, error) {
	var out struct {
		envelope
		Appointments []entities.StudyAppointment `json:"appointments"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/api/studies/%s/appointments/", url.PathEscape(studyID)), nil, &out); err != nil {
		return nil, err
	}
	return out.Appointments, nil
}

// CreateStudyAppointment schedules a study visit for a patient
func (c *HTTPClient) CreateStudyAppointment(ctx context.Context, studyID string, req StudyAppointmentRequest) error {
	var out envelope
	if err := c.postJSON(ctx, fmt.Sprintf("/api/studies/%s/appointments/create/", url.PathEscape(studyID)), req, &out); err != nil {
		return err
	}
	if !out.Success {
		return out.failure("failed to create study appointment")
	}
	return nil
}
