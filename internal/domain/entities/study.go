package entities

// Study lifecycle statuses as reported by the backend
const (
	StudyStatusRecruiting = "recruiting"
	StudyStatusInProgress = "in_progress"
	StudyStatusCompleted  = "completed"
	StudyStatusCancelled  = "cancelled"
)

// ClinicalTrial represents a research study. The backend computes enrollment
// counts; the client never derives or patches them.
type ClinicalTrial struct {
	ID                      ID           `json:"id"`
	Title                   string       `json:"title"`
	Description             string       `json:"description"`
	Phase                   string       `json:"phase"`
	Status                  string       `json:"status"`
	Sponsor                 string       `json:"sponsor"`
	Location                string       `json:"location"`
	EligibilityCriteria     string       `json:"eligibilityCriteria,omitempty"`
	PrimaryEndpoint         string       `json:"primaryEndpoint,omitempty"`
	EstimatedEnrollment     int          `json:"estimatedEnrollment"`
	CurrentEnrollment       int          `json:"currentEnrollment"`
	StartDate               string       `json:"startDate,omitempty"`
	EstimatedCompletionDate string       `json:"estimatedCompletionDate,omitempty"`
	ContactInfo             *ContactInfo `json:"contactInfo,omitempty"`
	Compensation            string       `json:"compensation,omitempty"`
	ParticipationStatus     string       `json:"participationStatus,omitempty"`
	CreatedAt               string       `json:"created_at,omitempty"`
}

// ContactInfo is the study's public point of contact
type ContactInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ApplicantStatus values form a state machine:
// interested -> applied -> screening -> enrolled -> completed, with
// withdrawn and rejected as terminal side exits.
type ApplicantStatus string

const (
	ApplicantInterested ApplicantStatus = "interested"
	ApplicantApplied    ApplicantStatus = "applied"
	ApplicantScreening  ApplicantStatus = "screening"
	ApplicantEnrolled   ApplicantStatus = "enrolled"
	ApplicantCompleted  ApplicantStatus = "completed"
	ApplicantWithdrawn  ApplicantStatus = "withdrawn"
	ApplicantRejected   ApplicantStatus = "rejected"
)

// StudyApplicant joins a patient to a study they applied to
type StudyApplicant struct {
	ID           ID              `json:"id"`
	PatientID    ID              `json:"patientId"`
	PatientName  string          `json:"patientName"`
	Status       ApplicantStatus `json:"status"`
	AppliedDate  string          `json:"appliedDate"`
	EnrolledDate string          `json:"enrolledDate,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

// StudyDocument is a file attached to a study (consent form, protocol, ...)
type StudyDocument struct {
	ID         ID     `json:"id"`
	Name       string `json:"name"`
	DocType    string `json:"docType"`
	URL        string `json:"url"`
	UploadedAt string `json:"uploadedAt"`
}

// StudyAppointment is a visit scheduled by a researcher for a study patient
type StudyAppointment struct {
	ID                   ID     `json:"id"`
	PatientID            ID     `json:"patientId"`
	PatientName          string `json:"patientName"`
	DoctorName           string `json:"doctor_name"`
	DoctorSpecialization string `json:"doctor_specialization"`
	AppointmentDate      string `json:"appointment_date"`
	Address              string `json:"address"`
	Reason               string `json:"reason"`
	Notes                string `json:"notes"`
	Status               string `json:"status"`
}
