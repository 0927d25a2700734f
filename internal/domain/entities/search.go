package entities

// SearchFilters narrows patient or researcher searches. Zero values are
// omitted from the query string.
type SearchFilters struct {
	Condition  string
	Location   string
	AgeMin     int
	AgeMax     int
	Gender     string
	StudyPhase string
}

// PatientMatch is a search hit for researchers browsing patients. The match
// score is computed server-side.
type PatientMatch struct {
	ID         ID     `json:"id"`
	PatientID  ID     `json:"patientId"`
	Age        int    `json:"age"`
	Gender     string `json:"gender"`
	Condition  string `json:"condition"`
	Stage      string `json:"stage,omitempty"`
	Location   string `json:"location"`
	MatchScore int    `json:"matchScore"`
	LastActive string `json:"lastActive"`
}

// ResearcherMatch is a search hit for patients browsing researchers
type ResearcherMatch struct {
	ID                 ID     `json:"id"`
	ResearcherID       ID     `json:"researcherId"`
	Name               string `json:"name"`
	Title              string `json:"title,omitempty"`
	Institution        string `json:"institution"`
	Specialization     string `json:"specialization"`
	ActiveStudies      int    `json:"activeStudies"`
	Location           string `json:"location"`
	MatchScore         int    `json:"matchScore"`
	VerificationStatus string `json:"verificationStatus,omitempty"`
	LastActive         string `json:"lastActive,omitempty"`
}
