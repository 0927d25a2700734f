package medconnect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/medconnect/medconnect-client/internal/domain/entities"
	"github.com/medconnect/medconnect-client/internal/infrastructure/observability"
	apperrors "github.com/medconnect/medconnect-client/pkg/errors"
)

// API is the full MedConnect backend surface. Every method issues a single
// request; none of them retry.
type API interface {
	// auth
	Login(ctx context.Context, usernameOrEmail, password string) (*LoginUser, error)
	RegisterPatient(ctx context.Context, req PatientRegistration) error
	RegisterResearcher(ctx context.Context, req ResearcherRegistration) error

	// profile
	GetProfile(ctx context.Context) (*entities.Profile, error)
	UpdateProfile(ctx context.Context, partial map[string]any) error
	UploadProfilePicture(ctx context.Context, filename string, content io.Reader) error

	// studies
	ListStudies(ctx context.Context) ([]entities.ClinicalTrial, error)
	ListUserStudies(ctx context.Context) ([]entities.ClinicalTrial, error)
	GetStudy(ctx context.Context, studyID string) (*entities.ClinicalTrial, error)
	CreateStudy(ctx context.Context, study map[string]any) error
	ApplyToStudy(ctx context.Context, studyID string) error
	ListStudyApplicants(ctx context.Context, studyID string) ([]entities.StudyApplicant, error)
	UpdateApplicantStatus(ctx context.Context, participationID, action, notes string) error
	ListStudyDocuments(ctx context.Context, studyID string) ([]entities.StudyDocument, error)
	UploadStudyDocument(ctx context.Context, studyID, filename string, content io.Reader, name, docType string) error
	DeleteStudyDocument(ctx context.Context, documentID string) error
	ListStudyAppointments(ctx context.Context, studyID string) ([]entities.StudyAppointment, error)
	CreateStudyAppointment(ctx context.Context, studyID string, req StudyAppointmentRequest) error

	// patient appointments
	ListAppointments(ctx context.Context) ([]entities.Appointment, error)
	CreateAppointment(ctx context.Context, req AppointmentRequest) error
	UpdateAppointment(ctx context.Context, appointmentID string, req AppointmentRequest) error
	DeleteAppointment(ctx context.Context, appointmentID string) error

	// communities
	ListCommunities(ctx context.Context) ([]entities.Community, error)
	ListUserCommunities(ctx context.Context) ([]entities.Community, error)
	CreateCommunity(ctx context.Context, community map[string]any) error
	JoinCommunity(ctx context.Context, communityID string) error
	LeaveCommunity(ctx context.Context, communityID string) error
	ListCommunityPosts(ctx context.Context, communityID string) ([]RawPost, error)
	CreatePost(ctx context.Context, communityID, content string, attachments []Attachment) error
	UpdatePost(ctx context.Context, postID, content string) error
	DeletePost(ctx context.Context, postID string) error
	LikePost(ctx context.Context, postID string) error
	UnlikePost(ctx context.Context, postID string) error
	AddComment(ctx context.Context, postID, content string) error

	// search
	SearchPatients(ctx context.Context, filters entities.SearchFilters) ([]entities.PatientMatch, error)
	SearchResearchers(ctx context.Context, filters entities.SearchFilters) ([]entities.ResearcherMatch, error)

	// health records
	ListMedicalRecords(ctx context.Context) ([]entities.MedicalRecord, error)
	CreateMedicalRecord(ctx context.Context, req MedicalRecordRequest) error
	DeleteMedicalRecord(ctx context.Context, recordID string) error
	ListVitalSigns(ctx context.Context) ([]entities.VitalSigns, error)
	CreateVitalSigns(ctx context.Context, vitals map[string]any) error
	ListMedications(ctx context.Context) ([]entities.Medication, error)
	CreateMedication(ctx context.Context, medication map[string]any) error
	ListImmunizations(ctx context.Context) ([]entities.Immunization, error)
	ListAllergies(ctx context.Context) ([]entities.Allergy, error)

	// contact requests
	ListContactRequests(ctx context.Context) ([]entities.ContactRequest, error)
	SendContactRequest(ctx context.Context, patientID, message string) error
	RespondToContactRequest(ctx context.Context, requestID, response string) error

	// Health probes backend reachability without needing a session
	Health(ctx context.Context) error
}

// HTTPClient talks JSON to the MedConnect backend. Session auth rides on
// cookies held by the jar, mirroring the browser's credentials:'include'.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client against baseURL with a fresh cookie jar
func New(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
	}, nil
}

// envelope is embedded in every backend response
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (e envelope) failure(fallback string) error {
	msg := e.Message
	if msg == "" {
		msg = fallback
	}
	return apperrors.NewExternalError(msg, nil)
}

// Attachment is a file to include in a multipart request
type Attachment struct {
	FieldName string
	Filename  string
	Content   io.Reader
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, body, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return apperrors.NewInternalError("encode request body", err)
	}
	return c.do(ctx, http.MethodPost, path, nil, bytes.NewReader(encoded), "application/json", out)
}

func (c *HTTPClient) putJSON(ctx context.Context, path string, body, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return apperrors.NewInternalError("encode request body", err)
	}
	return c.do(ctx, http.MethodPut, path, nil, bytes.NewReader(encoded), "application/json", out)
}

func (c *HTTPClient) deleteJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, "", out)
}

// postMultipart sends fields plus file attachments as multipart form data
func (c *HTTPClient) postMultipart(ctx context.Context, path string, fields map[string]string, files []Attachment, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return apperrors.NewInternalError("write form field", err)
		}
	}
	for _, file := range files {
		part, err := writer.CreateFormFile(file.FieldName, file.Filename)
		if err != nil {
			return apperrors.NewInternalError("create form file", err)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return apperrors.NewInternalError("copy file content", err)
		}
	}
	if err := writer.Close(); err != nil {
		return apperrors.NewInternalError("finalize multipart body", err)
	}

	return c.do(ctx, http.MethodPost, path, nil, &buf, writer.FormDataContentType(), out)
}

// do issues a single request and decodes the enveloped JSON response into
// out. out must embed envelope (or be *envelope) so success:false can be
// surfaced by the caller.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint = endpoint + "?" + query.Encode()
	}

	ctx, span := observability.StartSpan(ctx, fmt.Sprintf("medconnect.%s %s", method, path))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return apperrors.NewInternalError("build request", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)

	logger := observability.LoggerFromContext(ctx).With().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Logger()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error().Err(err).Msg("backend request failed")
		recordSpanError(span, err)
		return apperrors.NewExternalError("backend unreachable", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error().Err(err).Msg("read backend response")
		return apperrors.NewExternalError("read backend response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := serverMessage(payload)
		logger.Warn().Int("status", resp.StatusCode).Str("server_message", msg).Msg("backend returned error status")
		if resp.StatusCode == http.StatusUnauthorized {
			if msg == "" {
				msg = "not authenticated"
			}
			return apperrors.NewUnauthorizedError(msg)
		}
		if msg == "" {
			msg = fmt.Sprintf("backend returned status %d", resp.StatusCode)
		}
		return apperrors.NewExternalError(msg, nil)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		logger.Error().Err(err).Msg("decode backend response")
		return apperrors.NewExternalError("decode backend response", err)
	}
	return nil
}

// serverMessage pulls the free-text message out of an error body, if the
// body is the usual envelope at all.
func serverMessage(payload []byte) string {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return ""
	}
	return env.Message
}

func recordSpanError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
	}
}
