package medconnect

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/medconnect/medconnect-client/internal/domain/entities"
)

// MedicalRecordRequest is the payload for creating a medical record. When
// File is set the request goes out as multipart with the file attached,
// otherwise as plain JSON.
type MedicalRecordRequest struct {
	RecordType  string
	Title       string
	Description string
	Date        string
	Provider    string
	Notes       string
	Filename    string
	File        io.Reader
}

// ListMedicalRecords returns the session patient's medical records
func (c *HTTPClient) ListMedicalRecords(ctx context.Context) ([]entities.MedicalRecord, error) {
	var out struct {
		envelope
		MedicalRecords []entities.MedicalRecord `json:"medical_records"`
	}
	if err := c.getJSON(ctx, "/api/medical-records/", nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, out.failure("failed to fetch medical records")
	}
	return out.MedicalRecords, nil
}

// CreateMedicalRecord adds a medical record, with an optional file upload
func (c *HTTPClient) CreateMedicalRecord(ctx context.Context, req MedicalRecordRequest) error {
	var out envelope

	if req.File != nil {
		fields := map[string]string{
			"record_type": req.RecordType,
			"title":       req.Title,
			"description": req.Description,
			"date":        req.Date,
			"provider":    req.Provider,
		}
		if req.Notes != "" {
			fields["notes"] = req.Notes
		}
		files := []Attachment{{FieldName: "file", Filename: req.Filename, Content: req.File}}
		if err := c.postMultipart(ctx, "/api/medical-records/create/", fields, files, &out); err != nil {
			return err
		}
	} else {
		body := map[string]string{
			"record_type": req.RecordType,
			"title":       req.Title,
			"description": req.Description,
			"date":        req.Date,
			"provider":    req.Provider,
		}
		if req.Notes != "" {
			body["notes"] = req.Notes
		}
		if err := c.postJSON(ctx, "/api/medical-records/create/", body, &out); err != nil {
			return err
		}
	}

	if !out.Success {
		return out.failure("failed to create medical record")
	}
	return nil
}

// DeleteMedicalRecord removes a medical record
func (c *HTTPClient) DeleteMedicalRecord(ctx context.Context, recordID string) error {
	var out envelope
	if err := c.deleteJSON(ctx, fmt.Sprintf("/api/medical-records/%s/delete/", url.PathEscape(recordID)), &out); err != nil {
		return err
	}
	if !out.Success {
		return out.failure("failed to delete medical record")
	}
	return nil
}

// ListVitalSigns returns the session patient's vitals history
func (c *HTTPClient) ListVitalSigns(ctx context.Context) ([]entities.VitalSigns, error) {
	var out struct {
		envelope
		VitalSigns []entities.VitalSigns `json:"vital_signs"`
	}
	if err := c.getJSON(ctx, "/api/vital-signs/", nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, out.failure("failed to fetch vital signs")
	}
	return out.VitalSigns, nil
}

// CreateVitalSigns records a vitals measurement set
func (c *HTTPClient) CreateVitalSigns(ctx context.Context, vitals map[string]any) error {
	var out envelope
	if err := c.postJSON(ctx, "/api/vital-signs/create/", vitals, &out); err != nil {
		return err
	}
	if !out.Success {
		return out.failure("failed to create vital signs")
	}
	return nil
}

// ListMedications returns the session patient's medications
func (c *HTTPClient) ListMedications(ctx context.Context) ([]entities.Medication, error) {
	var out struct {
		envelope
		Medications []entities.Medication `json:"medications"`
	}
	if err := c.getJSON(ctx, "/api/medications/", nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, out.failure("failed to fetch medications")
	}
	return out.Medications, nil
}

// CreateMedication adds a medication entry
func (c *HTTPClient) CreateMedication(ctx context.Context, medication map[string]any) error {
	var out envelope
	if err := c.postJSON(ctx, "/api/medications/create/", medication, &out); err != nil {
		return err
	}
	if !out.Success {
		return out.failure("failed to create medication")
	}
	return nil
}

// ListImmunizations returns the session patient's vaccination history
func (c *HTTPClient) ListImmunizations(ctx context.Context) ([]entities.Immunization, error) {
	var out struct {
		envelope
		Immunizations []entities.Immunization `json:"immunizations"`
	}
	if err := c.getJSON(ctx, "/api/immunizations/", nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, out.failure("failed to fetch immunizations")
	}
	return out.Immunizations, nil
}

// ListAllergies returns the session patient's allergies
func (c *HTTPClient) ListAllergies(ctx context.Context) ([]entities.Allergy, error) {
	var out struct {
		envelope
		Allergies []entities.Allergy `json:"allergies"`
	}
	if err := c.getJSON(ctx, "/api/allergies/", nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, out.failure("failed to fetch allergies")
	}
	return out.Allergies, nil
}
