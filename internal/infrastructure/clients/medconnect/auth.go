package medconnect

import (
	"context"

	"github.com/medconnect/medconnect-client/internal/domain/entities"
)

// LoginUser is the raw user object inside a successful login response
type LoginUser struct {
	ID                entities.ID             `json:"id"`
	Email             string                  `json:"email"`
	Role              entities.UserType       `json:"role"`
	FirstName         string                  `json:"first_name"`
	LastName          string                  `json:"last_name"`
	PatientProfile    *LoginPatientProfile    `json:"patient_profile"`
	ResearcherProfile *LoginResearcherProfile `json:"researcher_profile"`
}

// LoginPatientProfile is the nested patient profile on the login response
type LoginPatientProfile struct {
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	CancerType  string `json:"cancer_type"`
}

// LoginResearcherProfile is the nested researcher profile on the login
// response. The backend may send it only partially filled.
type LoginResearcherProfile struct {
	Title          string `json:"title"`
	Institution    string `json:"institution"`
	Specialization string `json:"specialization"`
}

// PatientRegistration is the payload for the patient signup endpoint
type PatientRegistration struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	CancerType  string `json:"cancer_type"`
	PhoneNumber string `json:"phone_number"`
}

// ResearcherRegistration is the payload for the researcher signup endpoint
type ResearcherRegistration struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Title          string `json:"title"`
	Institution    string `json:"institution"`
	Specialization string `json:"specialization"`
	PhoneNumber    string `json:"phone_number"`
}

// Login posts credentials and returns the raw server user. The session
// cookie lands in the client's jar as a side effect.
func (c *HTTPClient) Login(ctx context.Context, usernameOrEmail, password string) (*LoginUser, error) {
	body := map[string]string{
		"username_or_email": usernameOrEmail,
		"password":          password,
	}
	var out struct {
		envelope
		User *LoginUser `json:"user"`
	}
	if err := c.postJSON(ctx, "/api/login/", body, &out); err != nil {
		return nil, err
	}
	if !out.Success || out.User == nil {
		return nil, out.failure("Login failed")
	}
	return out.User, nil
}

// RegisterPatient creates a patient account; the server logs the new user in
func (c *HTTPClient) RegisterPatient(ctx context.Context, req PatientRegistration) error {
	var out envelope
	if err := c.postJSON(ctx, "/api/register/patient/", req, &out); err != nil {
		return err
	}
	if !out.Success {
		return out.failure("Registration failed")
	}
	return nil
}

// RegisterResearcher creates a researcher account
func (c *HTTPClient) RegisterResearcher(ctx context.Context, req ResearcherRegistration) error {
	var out envelope
	if err := c.postJSON(ctx, "/api/register/researcher/", req, &out); err != nil {
		return err
	}
	if !out.Success {
		return out.failure("Registration failed")
	}
	return nil
}

// Health checks backend reachability. The studies listing is the cheapest
// endpoint that works without a session.
func (c *HTTPClient) Health(ctx context.Context) error {
	var out envelope
	return c.getJSON(ctx, "/api/studies/", nil, &out)
}
