package entities

// Profile is the server-owned profile record. Field names follow the wire
// format; the server merges partial updates, so the client never fills gaps.
type Profile struct {
	ID                ID                 `json:"id"`
	Username          string             `json:"username"`
	Email             string             `json:"email"`
	FirstName         string             `json:"first_name"`
	LastName          string             `json:"last_name"`
	Role              UserType           `json:"role"`
	ProfilePicture    string             `json:"profile_picture,omitempty"`
	Bio               string             `json:"bio,omitempty"`
	Address           string             `json:"address,omitempty"`
	ProfileCompletion int                `json:"profile_completion,omitempty"`
	EmergencyContact  *EmergencyContact  `json:"emergency_contact,omitempty"`
	PatientProfile    *PatientProfile    `json:"patient_profile,omitempty"`
	ResearcherProfile *ResearcherProfile `json:"researcher_profile,omitempty"`
}

// EmergencyContact is the profile's emergency contact sub-object
type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// PatientProfile holds the patient-specific profile fields
type PatientProfile struct {
	DateOfBirth       string  `json:"date_of_birth"`
	Gender            string  `json:"gender"`
	CancerType        string  `json:"cancer_type"`
	PhoneNumber       string  `json:"phone_number"`
	BloodType         string  `json:"blood_type,omitempty"`
	Height            float64 `json:"height,omitempty"`
	Weight            float64 `json:"weight,omitempty"`
	BMI               float64 `json:"bmi,omitempty"`
	Allergies         string  `json:"allergies,omitempty"`
	MedicalConditions string  `json:"medical_conditions,omitempty"`
	FamilyHistory     string  `json:"family_history,omitempty"`
	InsuranceProvider string  `json:"insurance_provider,omitempty"`
	InsuranceNumber   string  `json:"insurance_number,omitempty"`
}

// ResearcherProfile holds the researcher-specific profile fields
type ResearcherProfile struct {
	Title             string `json:"title"`
	Institution       string `json:"institution"`
	Specialization    string `json:"specialization"`
	PhoneNumber       string `json:"phone_number"`
	LicenseNumber     string `json:"license_number,omitempty"`
	YearsOfExperience int    `json:"years_of_experience,omitempty"`
	Education         string `json:"education,omitempty"`
	Certifications    string `json:"certifications,omitempty"`
}
