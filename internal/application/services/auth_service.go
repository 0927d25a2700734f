package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/medconnect/medconnect-client/internal/domain/entities"
	"github.com/medconnect/medconnect-client/internal/domain/providers"
	"github.com/medconnect/medconnect-client/internal/infrastructure/clients/medconnect"
	"github.com/medconnect/medconnect-client/internal/infrastructure/observability"
	apperrors "github.com/medconnect/medconnect-client/pkg/errors"
)

// SessionState tracks where the session is in its lifecycle
type SessionState string

const (
	SessionAnonymous      SessionState = "anonymous"
	SessionAuthenticating SessionState = "authenticating"
	SessionAuthenticated  SessionState = "authenticated"
)

const minPasswordLength = 6

// Delays mirroring the front end: the backend needs a beat after login
// before the session cookie is honored everywhere.
const (
	defaultVerifyDelay       = 200 * time.Millisecond
	defaultLocalProfileDelay = 800 * time.Millisecond
)

// LoginCredentials is what the login form submits. UserType is the role the
// form was opened for; the server's role always wins, the requested one is
// only logged.
type LoginCredentials struct {
	Email    string
	Password string
	UserType entities.UserType
}

// RegisterData is what the signup form submits. Role-specific fields are
// only read for the matching user type.
type RegisterData struct {
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	UserType        entities.UserType

	// patient fields
	DateOfBirth string
	Gender      string
	CancerType  string
	Phone       string

	// researcher fields
	Title          string
	Company        string
	Specialization string
}

// SessionListener is notified when the session user changes. A nil user
// means the session ended.
type SessionListener func(user *entities.User)

// AuthService owns the session: login, registration, logout and the
// persisted user snapshot. It is constructed once at application root and
// injected wherever session state is needed.
type AuthService struct {
	api   medconnect.API
	store providers.SessionStore

	mu        sync.RWMutex
	user      *entities.User
	state     SessionState
	listeners []SessionListener

	verifyDelay       time.Duration
	localProfileDelay time.Duration

	now func() time.Time
}

// NewAuthService creates the auth service and restores any persisted
// session snapshot.
func NewAuthService(api medconnect.API, store providers.SessionStore) *AuthService {
	s := &AuthService{
		api:               api,
		store:             store,
		state:             SessionAnonymous,
		verifyDelay:       defaultVerifyDelay,
		localProfileDelay: defaultLocalProfileDelay,
		now:               time.Now,
	}

	if stored, err := store.Load(); err != nil {
		observability.GetLogger().Warn().Err(err).Msg("failed to restore session snapshot")
	} else if stored != nil {
		s.user = stored
		s.state = SessionAuthenticated
	}
	return s
}

// Login authenticates against the backend. On success the normalized user is
// persisted and listeners are notified; afterwards a best-effort profile
// request confirms the session cookie took hold (failure is logged only).
func (s *AuthService) Login(ctx context.Context, creds LoginCredentials) error {
	logger := observability.LoggerFromContext(ctx)
	if creds.UserType != "" {
		scoped := logger.With().Str("requested_role", string(creds.UserType)).Logger()
		logger = &scoped
	}
	logger.Debug().Str("email", creds.Email).Msg("login attempt")

	s.setState(SessionAuthenticating)
	raw, err := s.api.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		s.setState(SessionAnonymous)
		return err
	}
	if creds.UserType != "" && raw.Role != creds.UserType {
		logger.Warn().Str("server_role", string(raw.Role)).Msg("server role differs from requested role")
	}

	user := normalizeSessionUser(raw, s.now())
	if err := s.store.Save(user); err != nil {
		logger.Warn().Err(err).Msg("failed to persist session snapshot")
	}

	s.mu.Lock()
	s.user = user
	s.state = SessionAuthenticated
	s.mu.Unlock()
	s.notify(user)

	// Give the backend a moment before verifying the cookie is active.
	select {
	case <-ctx.Done():
		return nil
	case <-time.After(s.verifyDelay):
	}
	if _, err := s.api.GetProfile(ctx); err != nil {
		logger.Warn().Err(err).Msg("session verification failed, continuing")
	} else {
		logger.Debug().Msg("session verified")
	}
	return nil
}

// Register validates the signup form and creates the account. Validation
// failures are returned before any network call. The backend logs the new
// account in; the caller still goes through Login to establish a local
// session, matching the front end flow.
func (s *AuthService) Register(ctx context.Context, data RegisterData) error {
	if data.Password != data.ConfirmPassword {
		return apperrors.NewValidationError("Passwords do not match")
	}
	if len(data.Password) < minPasswordLength {
		return apperrors.NewValidationError(fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}

	username := deriveUsername(data.Email, s.now())

	switch data.UserType {
	case entities.UserTypePatient:
		return s.api.RegisterPatient(ctx, medconnect.PatientRegistration{
			Username:    username,
			Email:       data.Email,
			Password:    data.Password,
			FirstName:   data.FirstName,
			LastName:    data.LastName,
			DateOfBirth: data.DateOfBirth,
			Gender:      data.Gender,
			CancerType:  data.CancerType,
			PhoneNumber: data.Phone,
		})
	case entities.UserTypeResearcher:
		return s.api.RegisterResearcher(ctx, medconnect.ResearcherRegistration{
			Username:       username,
			Email:          data.Email,
			Password:       data.Password,
			FirstName:      data.FirstName,
			LastName:       data.LastName,
			Title:          data.Title,
			Institution:    data.Company,
			Specialization: data.Specialization,
			PhoneNumber:    data.Phone,
		})
	default:
		return apperrors.NewValidationError("Invalid user type")
	}
}

// Logout ends the session synchronously: in-memory state and the persisted
// snapshot are cleared, no server call is made.
func (s *AuthService) Logout() {
	if err := s.store.Clear(); err != nil {
		observability.GetLogger().Warn().Err(err).Msg("failed to clear session snapshot")
	}

	s.mu.Lock()
	s.user = nil
	s.state = SessionAnonymous
	s.mu.Unlock()
	s.notify(nil)
}

// Invalidate drops the session after the backend rejected it (expired
// cookie). Same effect as Logout, separate name for callers.
func (s *AuthService) Invalidate() {
	observability.GetLogger().Info().Msg("session rejected by backend, clearing")
	s.Logout()
}

// UpdateLocalProfile applies a client-local mutation to the session user and
// writes it through to the persisted snapshot. The richer server-backed
// update lives in DataService.
func (s *AuthService) UpdateLocalProfile(ctx context.Context, update func(user *entities.User)) error {
	if s.CurrentUser() == nil {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.localProfileDelay):
	}

	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return nil
	}
	update(s.user)
	updated := *s.user
	s.mu.Unlock()

	if err := s.store.Save(&updated); err != nil {
		return apperrors.NewInternalError("persist updated session snapshot", err)
	}
	return nil
}

// CurrentUser returns a copy of the session user, or nil when anonymous
func (s *AuthService) CurrentUser() *entities.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// IsAuthenticated reports whether a session user is present
func (s *AuthService) IsAuthenticated() bool {
	return s.CurrentUser() != nil
}

// State returns the current session lifecycle state
func (s *AuthService) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// OnSessionChange registers a listener for session transitions
func (s *AuthService) OnSessionChange(listener SessionListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// Teardown drops all listeners. The service is unusable for notifications
// afterwards; collections and snapshot are left as they are.
func (s *AuthService) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = nil
}

func (s *AuthService) setState(state SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

func (s *AuthService) notify(user *entities.User) {
	s.mu.RLock()
	listeners := make([]SessionListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(user)
	}
}

// deriveUsername suffixes the email local part with a timestamp so repeated
// signups from the same address never collide.
func deriveUsername(email string, now time.Time) string {
	local := email
	if at := strings.Index(email, "@"); at >= 0 {
		local = email[:at]
	}
	return fmt.Sprintf("%s%d", local, now.UnixMilli())
}

// normalizeSessionUser builds the client-side user from the raw login
// response. The researcher profile is only carried over when the server sent
// it complete; partial profiles are dropped rather than surfaced partial.
func normalizeSessionUser(raw *medconnect.LoginUser, now time.Time) *entities.User {
	user := &entities.User{
		ID:              raw.ID,
		Email:           raw.Email,
		UserType:        raw.Role,
		FirstName:       raw.FirstName,
		LastName:        raw.LastName,
		ProfileComplete: true,
		CreatedAt:       now.Format(time.RFC3339),
		LastLogin:       now.Format(time.RFC3339),
		PrivacySettings: entities.PrivacySettings{
			ShareWithResearchers:   true,
			AllowCommunityMessages: true,
			ShowInSearch:           true,
			DataRetentionPeriod:    365,
		},
	}

	if p := raw.PatientProfile; p != nil {
		user.Patient = &entities.PatientSummary{
			DateOfBirth: p.DateOfBirth,
			Gender:      p.Gender,
			Conditions:  []string{p.CancerType},
			Medications: []string{},
			Allergies:   []string{},
		}
	}

	if r := raw.ResearcherProfile; r != nil && r.Title != "" && r.Institution != "" && r.Specialization != "" {
		user.Researcher = &entities.ResearcherSummary{
			Title:              r.Title,
			Institution:        r.Institution,
			Specialization:     r.Specialization,
			LicenseNumber:      "",
			VerificationStatus: "pending",
		}
	}

	return user
}
