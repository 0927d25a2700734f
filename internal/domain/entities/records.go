package entities

// MedicalRecord is a patient-owned health record entry
type MedicalRecord struct {
	ID          ID     `json:"id"`
	RecordType  string `json:"record_type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Provider    string `json:"provider"`
	FileURL     string `json:"file_url,omitempty"`
	Notes       string `json:"notes,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// VitalSigns is a single vitals measurement set
type VitalSigns struct {
	ID                     ID      `json:"id"`
	Date                   string  `json:"date"`
	BloodPressureSystolic  float64 `json:"blood_pressure_systolic,omitempty"`
	BloodPressureDiastolic float64 `json:"blood_pressure_diastolic,omitempty"`
	HeartRate              float64 `json:"heart_rate,omitempty"`
	Temperature            float64 `json:"temperature,omitempty"`
	RespiratoryRate        float64 `json:"respiratory_rate,omitempty"`
	OxygenSaturation       float64 `json:"oxygen_saturation,omitempty"`
	Weight                 float64 `json:"weight,omitempty"`
	Height                 float64 `json:"height,omitempty"`
	Notes                  string  `json:"notes,omitempty"`
	RecordedBy             string  `json:"recorded_by,omitempty"`
}

// Medication is a prescribed medication entry
type Medication struct {
	ID           ID     `json:"id"`
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date,omitempty"`
	PrescribedBy string `json:"prescribed_by"`
	Status       string `json:"status"`
	SideEffects  string `json:"side_effects,omitempty"`
	Notes        string `json:"notes,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// Immunization is a vaccination record
type Immunization struct {
	ID               ID     `json:"id"`
	VaccineName      string `json:"vaccine_name"`
	DateAdministered string `json:"date_administered"`
	NextDueDate      string `json:"next_due_date,omitempty"`
	AdministeredBy   string `json:"administered_by"`
	LotNumber        string `json:"lot_number,omitempty"`
	Notes            string `json:"notes,omitempty"`
	CreatedAt        string `json:"created_at,omitempty"`
}

// Allergy is a recorded allergy with its reaction profile
type Allergy struct {
	ID        ID     `json:"id"`
	Allergen  string `json:"allergen"`
	Reaction  string `json:"reaction"`
	Severity  string `json:"severity"`
	OnsetDate string `json:"onset_date,omitempty"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}
