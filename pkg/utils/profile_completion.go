package utils

import (
	"strings"

	"github.com/medconnect/medconnect-client/internal/domain/entities"
)

// ProfileCompletion returns the percentage of filled profile fields, clamped
// to 0-100. A server-computed profile_completion value wins when present;
// the local count only covers profiles from endpoints that omit it. Role
// decides which nested field set is counted.
func ProfileCompletion(p *entities.Profile) int {
	if p == nil {
		return 0
	}
	if p.ProfileCompletion > 0 {
		return clampPercent(p.ProfileCompletion)
	}

	filled, total := 0, 0
	countStr := func(value string) {
		total++
		if strings.TrimSpace(value) != "" {
			filled++
		}
	}
	countNum := func(value float64) {
		total++
		if value > 0 {
			filled++
		}
	}

	countStr(p.FirstName)
	countStr(p.LastName)
	countStr(p.Bio)
	countStr(p.Address)
	countStr(p.ProfilePicture)

	// Emergency contact fields count toward the total even when the
	// sub-object is missing entirely.
	var contact entities.EmergencyContact
	if p.EmergencyContact != nil {
		contact = *p.EmergencyContact
	}
	countStr(contact.Name)
	countStr(contact.Phone)
	countStr(contact.Relationship)

	if p.Role == entities.UserTypeResearcher {
		var rp entities.ResearcherProfile
		if p.ResearcherProfile != nil {
			rp = *p.ResearcherProfile
		}
		countStr(rp.Title)
		countStr(rp.Institution)
		countStr(rp.Specialization)
		countStr(rp.PhoneNumber)
		countStr(rp.LicenseNumber)
		countStr(rp.Education)
		countStr(rp.Certifications)
		countNum(float64(rp.YearsOfExperience))
	} else {
		var pp entities.PatientProfile
		if p.PatientProfile != nil {
			pp = *p.PatientProfile
		}
		countStr(pp.DateOfBirth)
		countStr(pp.Gender)
		countStr(pp.CancerType)
		countStr(pp.PhoneNumber)
		countStr(pp.BloodType)
		countStr(pp.Allergies)
		countStr(pp.MedicalConditions)
		countStr(pp.FamilyHistory)
		countStr(pp.InsuranceProvider)
		countStr(pp.InsuranceNumber)
		countNum(pp.Height)
		countNum(pp.Weight)
		countNum(pp.BMI)
	}

	if total == 0 {
		return 0
	}
	return clampPercent((filled*100 + total/2) / total)
}

func clampPercent(value int) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
