package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/medconnect/medconnect-client/internal/domain/entities"
	"github.com/medconnect/medconnect-client/internal/infrastructure/clients/medconnect"
	"github.com/medconnect/medconnect-client/internal/infrastructure/observability"
)

// Sessions is the slice of AuthService that DataService needs: who is logged
// in, and a way to drop a session the backend no longer honors.
type Sessions interface {
	CurrentUser() *entities.User
	Invalidate()
}

// The backend needs a short grace period after login before its session
// cookie is honored on data endpoints.
const defaultLoadDelay = 300 * time.Millisecond

// DataService is the single source of truth for platform data. It holds one
// in-memory collection per resource, refreshed from the backend; mutations go
// to the server first and then refetch the affected collection, so local
// state is never patched optimistically.
type DataService struct {
	api      medconnect.API
	sessions Sessions

	mu                sync.RWMutex
	clinicalTrials    []entities.ClinicalTrial
	userTrials        []entities.ClinicalTrial
	communities       []entities.Community
	userCommunities   []entities.Community
	communityPosts    []entities.CommunityPost
	patientMatches    []entities.PatientMatch
	researcherMatches []entities.ResearcherMatch
	profile           *entities.Profile
	medicalRecords    []entities.MedicalRecord
	vitalSigns        []entities.VitalSigns
	medications       []entities.Medication
	immunizations     []entities.Immunization
	allergies         []entities.Allergy
	contactRequests   []entities.ContactRequest
	appointments      []entities.Appointment

	loadDelay time.Duration

	loadMu   sync.Mutex
	loadDone chan struct{} // nil when no bulk load is in flight
}

// NewDataService creates the data service. Wire it to session transitions
// with auth.OnSessionChange(service.HandleSessionChange).
func NewDataService(api medconnect.API, sessions Sessions) *DataService {
	return &DataService{
		api:       api,
		sessions:  sessions,
		loadDelay: defaultLoadDelay,
	}
}

// HandleSessionChange reacts to a session transition. A new session kicks off
// the bulk load in the background after a short delay; collections from a
// previous session are left in place, guards keep them from refreshing.
// Loads from back-to-back transitions are chained, never concurrent.
func (s *DataService) HandleSessionChange(user *entities.User) {
	if user == nil {
		return
	}

	s.loadMu.Lock()
	previous := s.loadDone
	done := make(chan struct{})
	s.loadDone = done
	s.loadMu.Unlock()

	go func() {
		defer close(done)
		if previous != nil {
			<-previous
		}
		time.Sleep(s.loadDelay)
		s.LoadAll(context.Background())
	}()
}

// WaitForLoad blocks until the most recently started bulk load finishes
func (s *DataService) WaitForLoad() {
	s.loadMu.Lock()
	done := s.loadDone
	s.loadMu.Unlock()

	if done != nil {
		<-done
	}
}

// LoadAll refreshes every session-scoped collection concurrently. Each fetch
// applies its own role guard, so patient-only collections are simply skipped
// for researchers and vice versa. Individual failures are logged by the
// fetches and never abort the rest.
func (s *DataService) LoadAll(ctx context.Context) {
	logger := observability.LoggerFromContext(ctx)
	logger.Info().Msg("loading platform data")

	var wg sync.WaitGroup
	fetches := []func(){
		func() { s.FetchStudies(ctx) },
		func() { s.FetchUserStudies(ctx) },
		func() { s.FetchCommunities(ctx) },
		func() { s.FetchUserCommunities(ctx) },
		func() { s.FetchProfile(ctx) },
		func() { s.FetchMedicalRecords(ctx) },
		func() { s.FetchVitalSigns(ctx) },
		func() { s.FetchMedications(ctx) },
		func() { s.FetchImmunizations(ctx) },
		func() { s.FetchAllergies(ctx) },
		func() { s.FetchContactRequests(ctx) },
	}
	wg.Add(len(fetches))
	for _, fetch := range fetches {
		go func(fetch func()) {
			defer wg.Done()
			fetch()
		}(fetch)
	}
	wg.Wait()

	logger.Info().Msg("platform data loaded")
}

// requireUser returns the session user, or nil (logging the skip) when
// anonymous
func (s *DataService) requireUser(ctx context.Context, op string) *entities.User {
	user := s.sessions.CurrentUser()
	if user == nil {
		s.opLogger(ctx, op).Debug().Msg("skipped, no session")
		return nil
	}
	return user
}

// requirePatient returns the session user only when it is a patient
func (s *DataService) requirePatient(ctx context.Context, op string) *entities.User {
	user := s.sessions.CurrentUser()
	if !user.IsPatient() {
		s.opLogger(ctx, op).Debug().Msg("skipped, patient session required")
		return nil
	}
	return user
}

// requireResearcher returns the session user only when it is a researcher
func (s *DataService) requireResearcher(ctx context.Context, op string) *entities.User {
	user := s.sessions.CurrentUser()
	if !user.IsResearcher() {
		s.opLogger(ctx, op).Debug().Msg("skipped, researcher session required")
		return nil
	}
	return user
}

func (s *DataService) opLogger(ctx context.Context, op string) *zerolog.Logger {
	l := observability.LoggerFromContext(ctx).With().Str("op", op).Logger()
	return &l
}

// ClinicalTrials returns the current studies collection
func (s *DataService) ClinicalTrials() []entities.ClinicalTrial {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.ClinicalTrial(nil), s.clinicalTrials...)
}

// UserStudies returns the session user's studies: applied-to for patients,
// owned for researchers.
func (s *DataService) UserStudies() []entities.ClinicalTrial {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.ClinicalTrial(nil), s.userTrials...)
}

// Communities returns the current communities collection
func (s *DataService) Communities() []entities.Community {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Community(nil), s.communities...)
}

// UserCommunities returns the communities the session user belongs to
func (s *DataService) UserCommunities() []entities.Community {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Community(nil), s.userCommunities...)
}

// CommunityPosts returns the posts of the most recently fetched community
func (s *DataService) CommunityPosts() []entities.CommunityPost {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.CommunityPost(nil), s.communityPosts...)
}

// PatientMatches returns the last patient search results
func (s *DataService) PatientMatches() []entities.PatientMatch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.PatientMatch(nil), s.patientMatches...)
}

// ResearcherMatches returns the last researcher search results
func (s *DataService) ResearcherMatches() []entities.ResearcherMatch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.ResearcherMatch(nil), s.researcherMatches...)
}

// Profile returns the session user's full profile, or nil before it loads
func (s *DataService) Profile() *entities.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	profile := *s.profile
	return &profile
}

// MedicalRecords returns the session patient's medical records
func (s *DataService) MedicalRecords() []entities.MedicalRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.MedicalRecord(nil), s.medicalRecords...)
}

// VitalSigns returns the session patient's vitals history
func (s *DataService) VitalSigns() []entities.VitalSigns {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.VitalSigns(nil), s.vitalSigns...)
}

// Medications returns the session patient's medications
func (s *DataService) Medications() []entities.Medication {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Medication(nil), s.medications...)
}

// Immunizations returns the session patient's vaccination history
func (s *DataService) Immunizations() []entities.Immunization {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Immunization(nil), s.immunizations...)
}

// Allergies returns the session patient's allergies
func (s *DataService) Allergies() []entities.Allergy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Allergy(nil), s.allergies...)
}

// ContactRequests returns the session user's contact requests
func (s *DataService) ContactRequests() []entities.ContactRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.ContactRequest(nil), s.contactRequests...)
}

// Appointments returns the session patient's personal appointments
func (s *DataService) Appointments() []entities.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Appointment(nil), s.appointments...)
}
