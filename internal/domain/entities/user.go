package entities

// UserType identifies which side of the platform an account belongs to
type UserType string

const (
	UserTypePatient    UserType = "patient"
	UserTypeResearcher UserType = "researcher"
)

// User is the normalized session user built from the login response.
// It is the snapshot persisted by the session store.
type User struct {
	ID              ID                 `json:"id"`
	Email           string             `json:"email"`
	UserType        UserType           `json:"userType"`
	FirstName       string             `json:"firstName"`
	LastName        string             `json:"lastName"`
	ProfileComplete bool               `json:"profileComplete"`
	CreatedAt       string             `json:"createdAt"`
	LastLogin       string             `json:"lastLogin"`
	PrivacySettings PrivacySettings    `json:"privacySettings"`
	Patient         *PatientSummary    `json:"patientProfile,omitempty"`
	Researcher      *ResearcherSummary `json:"researcherProfile,omitempty"`
}

// PrivacySettings mirrors the defaults the front end applies at login
type PrivacySettings struct {
	ShareWithResearchers   bool `json:"shareWithResearchers"`
	AllowCommunityMessages bool `json:"allowCommunityMessages"`
	ShowInSearch           bool `json:"showInSearch"`
	DataRetentionPeriod    int  `json:"dataRetentionPeriod"`
}

// PatientSummary is the slice of the patient profile kept on the session user
type PatientSummary struct {
	DateOfBirth string   `json:"dateOfBirth"`
	Gender      string   `json:"gender"`
	Conditions  []string `json:"conditions"`
	Medications []string `json:"medications"`
	Allergies   []string `json:"allergies"`
}

// ResearcherSummary is the slice of the researcher profile kept on the
// session user. It is only populated when the server sent a complete profile.
type ResearcherSummary struct {
	Title              string `json:"title"`
	Institution        string `json:"institution"`
	Specialization     string `json:"specialization"`
	LicenseNumber      string `json:"licenseNumber"`
	VerificationStatus string `json:"verificationStatus"`
}

// IsPatient reports whether the user is on the patient side
func (u *User) IsPatient() bool {
	return u != nil && u.UserType == UserTypePatient
}

// IsResearcher reports whether the user is on the researcher side
func (u *User) IsResearcher() bool {
	return u != nil && u.UserType == UserTypeResearcher
}
