package services

import (
	"context"

	"github.com/medconnect/medconnect-client/internal/domain/entities"
	"github.com/medconnect/medconnect-client/internal/infrastructure/clients/medconnect"
)

// NewVitalSigns is the input for recording a vitals measurement set
type NewVitalSigns struct {
	Date                   string
	BloodPressureSystolic  int
	BloodPressureDiastolic int
	HeartRate              int
	Temperature            float64
	Weight                 float64
	Height                 float64
	OxygenSaturation       int
	Notes                  string
}

// NewMedication is the input for adding a medication entry
type NewMedication struct {
	Name         string
	Dosage       string
	Frequency    string
	StartDate    string
	EndDate      string
	PrescribedBy string
	Notes        string
}

// FetchMedicalRecords refreshes the patient's medical records collection
func (s *DataService) FetchMedicalRecords(ctx context.Context) []entities.MedicalRecord {
	if s.requirePatient(ctx, "fetch_medical_records") == nil {
		return s.MedicalRecords()
	}

	records, err := s.api.ListMedicalRecords(ctx)
	if err != nil {
		s.opLogger(ctx, "fetch_medical_records").Error().Err(err).Msg("fetch failed")
		return s.MedicalRecords()
	}

	s.mu.Lock()
	s.medicalRecords = records
	s.mu.Unlock()
	return s.MedicalRecords()
}

// CreateMedicalRecord adds a medical record (optionally with an attached
// file) and refreshes the collection.
func (s *DataService) CreateMedicalRecord(ctx context.Context, req medconnect.MedicalRecordRequest) bool {
	if s.requirePatient(ctx, "create_medical_record") == nil {
		return false
	}

	if err := s.api.CreateMedicalRecord(ctx, req); err != nil {
		s.opLogger(ctx, "create_medical_record").Error().Err(err).Msg("create failed")
		return false
	}

	s.FetchMedicalRecords(ctx)
	return true
}

// DeleteMedicalRecord removes a medical record and refreshes the collection
func (s *DataService) DeleteMedicalRecord(ctx context.Context, recordID string) bool {
	if s.requirePatient(ctx, "delete_medical_record") == nil {
		return false
	}

	if err := s.api.DeleteMedicalRecord(ctx, recordID); err != nil {
		s.opLogger(ctx, "delete_medical_record").Error().Err(err).Str("record_id", recordID).Msg("delete failed")
		return false
	}

	s.FetchMedicalRecords(ctx)
	return true
}

// FetchVitalSigns refreshes the patient's vitals collection
func (s *DataService) FetchVitalSigns(ctx context.Context) []entities.VitalSigns {
	if s.requirePatient(ctx, "fetch_vital_signs") == nil {
		return s.VitalSigns()
	}

	vitals, err := s.api.ListVitalSigns(ctx)
	if err != nil {
		s.opLogger(ctx, "fetch_vital_signs").Error().Err(err).Msg("fetch failed")
		return s.VitalSigns()
	}

	s.mu.Lock()
	s.vitalSigns = vitals
	s.mu.Unlock()
	return s.VitalSigns()
}

// CreateVitalSigns records a measurement set and refreshes the collection
func (s *DataService) CreateVitalSigns(ctx context.Context, vitals NewVitalSigns) bool {
	if s.requirePatient(ctx, "create_vital_signs") == nil {
		return false
	}

	payload := map[string]any{
		"date":                     vitals.Date,
		"blood_pressure_systolic":  vitals.BloodPressureSystolic,
		"blood_pressure_diastolic": vitals.BloodPressureDiastolic,
		"heart_rate":               vitals.HeartRate,
		"temperature":              vitals.Temperature,
		"weight":                   vitals.Weight,
		"height":                   vitals.Height,
		"oxygen_saturation":        vitals.OxygenSaturation,
	}
	if vitals.Notes != "" {
		payload["notes"] = vitals.Notes
	}
	if err := s.api.CreateVitalSigns(ctx, payload); err != nil {
		s.opLogger(ctx, "create_vital_signs").Error().Err(err).Msg("create failed")
		return false
	}

	s.FetchVitalSigns(ctx)
	return true
}

// FetchMedications refreshes the patient's medications collection
func (s *DataService) FetchMedications(ctx context.Context) []entities.Medication {
	if s.requirePatient(ctx, "fetch_medications") == nil {
		return s.Medications()
	}

	medications, err := s.api.ListMedications(ctx)
	if err != nil {
		s.opLogger(ctx, "fetch_medications").Error().Err(err).Msg("fetch failed")
		return s.Medications()
	}

	s.mu.Lock()
	s.medications = medications
	s.mu.Unlock()
	return s.Medications()
}

// CreateMedication adds a medication entry and refreshes the collection
func (s *DataService) CreateMedication(ctx context.Context, medication NewMedication) bool {
	if s.requirePatient(ctx, "create_medication") == nil {
		return false
	}

	payload := map[string]any{
		"name":      medication.Name,
		"dosage":    medication.Dosage,
		"frequency": medication.Frequency,
	}
	if medication.StartDate != "" {
		payload["start_date"] = medication.StartDate
	}
	if medication.EndDate != "" {
		payload["end_date"] = medication.EndDate
	}
	if medication.PrescribedBy != "" {
		payload["prescribed_by"] = medication.PrescribedBy
	}
	if medication.Notes != "" {
		payload["notes"] = medication.Notes
	}
	if err := s.api.CreateMedication(ctx, payload); err != nil {
		s.opLogger(ctx, "create_medication").Error().Err(err).Msg("create failed")
		return false
	}

	s.FetchMedications(ctx)
	return true
}

// FetchImmunizations refreshes the patient's vaccination history
func (s *DataService) FetchImmunizations(ctx context.Context) []entities.Immunization {
	if s.requirePatient(ctx, "fetch_immunizations") == nil {
		return s.Immunizations()
	}

	immunizations, err := s.api.ListImmunizations(ctx)
	if err != nil {
		s.opLogger(ctx, "fetch_immunizations").Error().Err(err).Msg("fetch failed")
		return s.Immunizations()
	}

	s.mu.Lock()
	s.immunizations = immunizations
	s.mu.Unlock()
	return s.Immunizations()
}

// FetchAllergies refreshes the patient's allergies collection
func (s *DataService) FetchAllergies(ctx context.Context) []entities.Allergy {
	if s.requirePatient(ctx, "fetch_allergies") == nil {
		return s.Allergies()
	}

	allergies, err := s.api.ListAllergies(ctx)
	if err != nil {
		s.opLogger(ctx, "fetch_allergies").Error().Err(err).Msg("fetch failed")
		return s.Allergies()
	}

	s.mu.Lock()
	s.allergies = allergies
	s.mu.Unlock()
	return s.Allergies()
}
