package medconnect

import (
	"context"
	"fmt"
	"net/url"

	"github.com/medconnect/medconnect-client/internal/domain/entities"
)

func searchQuery(filters entities.SearchFilters, includePhase bool) url.Values {
	query := url.Values{}
	if filters.Condition != "" {
		query.Set("condition", filters.Condition)
	}
	if filters.Location != "" {
		query.Set("location", filters.Location)
	}
	if filters.AgeMin > 0 || filters.AgeMax > 0 {
		query.Set("ageRange", fmt.Sprintf("%d-%d", filters.AgeMin, filters.AgeMax))
	}
	if filters.Gender != "" {
		query.Set("gender", filters.Gender)
	}
	if includePhase && filters.StudyPhase != "" {
		query.Set("studyPhase", filters.StudyPhase)
	}
	return query
}

// SearchPatients finds patients matching the filters. Researcher sessions
// only; the server enforces the role.
func (c *HTTPClient) SearchPatients(ctx context.Context, filters entities.SearchFilters) ([]entities.PatientMatch, error) {
	var out struct {
		envelope
		Patients []entities.PatientMatch `json:"patients"`
	}
	if err := c.getJSON(ctx, "/api/search/patients/", searchQuery(filters, false), &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, out.failure("failed to search patients")
	}
	return out.Patients, nil
}

// SearchResearchers finds researchers matching the filters
func (c *HTTPClient) SearchResearchers(ctx context.Context, filters entities.SearchFilters) ([]entities.ResearcherMatch, error) {
	var out struct {
		envelope
		Researchers []entities.ResearcherMatch `json:"researchers"`
	}
	if err := c.getJSON(ctx, "/api/search/researchers/", searchQuery(filters, true), &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, out.failure("failed to search researchers")
	}
	return out.Researchers, nil
}
