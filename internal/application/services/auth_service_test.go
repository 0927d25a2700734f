package services_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medconnect/medconnect-client/internal/application/services"
	"github.com/medconnect/medconnect-client/internal/domain/entities"
	"github.com/medconnect/medconnect-client/internal/infrastructure/clients/medconnect"
	"github.com/medconnect/medconnect-client/internal/infrastructure/session"
	apperrors "github.com/medconnect/medconnect-client/pkg/errors"
)

func newAuthFixture(t *testing.T, handler http.Handler) (*services.AuthService, *session.FileStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := medconnect.New(server.URL, 5*time.Second)
	require.NoError(t, err)

	store := session.NewFileStore(t.TempDir())
	return services.NewAuthService(client, store), store
}

func loginBackend(t *testing.T, userJSON string) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/login/", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "s1"})
		w.Write([]byte(`{"success": true, "user": ` + userJSON + `}`))
	})
	mux.HandleFunc("/api/profile/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "profile": {"id": "1", "role": "patient"}}`))
	})
	return mux
}

func TestAuthService_Login(t *testing.T) {
	t.Run("persists the normalized patient user", func(t *testing.T) {
		auth, store := newAuthFixture(t, loginBackend(t, `{
			"id": 12,
			"email": "jo@example.com",
			"role": "patient",
			"first_name": "Jo",
			"last_name": "Miller",
			"patient_profile": {"date_of_birth": "1980-02-01", "gender": "female", "cancer_type": "breast cancer"}
		}`))

		err := auth.Login(context.Background(), services.LoginCredentials{
			Email:    "jo@example.com",
			Password: "secret123",
			UserType: entities.UserTypePatient,
		})

		require.NoError(t, err)
		assert.Equal(t, services.SessionAuthenticated, auth.State())

		user := auth.CurrentUser()
		require.NotNil(t, user)
		assert.Equal(t, entities.ID("12"), user.ID)
		assert.Equal(t, entities.UserTypePatient, user.UserType)
		require.NotNil(t, user.Patient)
		assert.Equal(t, []string{"breast cancer"}, user.Patient.Conditions)
		assert.Empty(t, user.Patient.Medications)
		assert.True(t, user.ProfileComplete)
		assert.Equal(t, 365, user.PrivacySettings.DataRetentionPeriod)

		persisted, err := store.Load()
		require.NoError(t, err)
		require.NotNil(t, persisted)
		assert.Equal(t, user.ID, persisted.ID)
	})

	t.Run("keeps a complete researcher profile", func(t *testing.T) {
		auth, _ := newAuthFixture(t, loginBackend(t, `{
			"id": "9",
			"email": "dr@example.com",
			"role": "researcher",
			"first_name": "Ada",
			"last_name": "Okafor",
			"researcher_profile": {"title": "Dr.", "institution": "UCH", "specialization": "Oncology"}
		}`))

		require.NoError(t, auth.Login(context.Background(), services.LoginCredentials{
			Email: "dr@example.com", Password: "secret123",
		}))

		user := auth.CurrentUser()
		require.NotNil(t, user.Researcher)
		assert.Equal(t, "UCH", user.Researcher.Institution)
		assert.Equal(t, "pending", user.Researcher.VerificationStatus)
	})

	t.Run("drops a partial researcher profile", func(t *testing.T) {
		auth, _ := newAuthFixture(t, loginBackend(t, `{
			"id": "9",
			"email": "dr@example.com",
			"role": "researcher",
			"researcher_profile": {"title": "Dr.", "institution": "", "specialization": "Oncology"}
		}`))

		require.NoError(t, auth.Login(context.Background(), services.LoginCredentials{
			Email: "dr@example.com", Password: "secret123",
		}))

		assert.Nil(t, auth.CurrentUser().Researcher)
	})

	t.Run("rejected credentials leave no session behind", func(t *testing.T) {
		auth, store := newAuthFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success": false, "message": "Invalid credentials"}`))
		}))

		err := auth.Login(context.Background(), services.LoginCredentials{
			Email: "jo@example.com", Password: "wrong",
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
		assert.Equal(t, services.SessionAnonymous, auth.State())
		assert.Nil(t, auth.CurrentUser())

		persisted, loadErr := store.Load()
		assert.NoError(t, loadErr)
		assert.Nil(t, persisted)
	})

	t.Run("logs the requested role and flags a server mismatch", func(t *testing.T) {
		var buf bytes.Buffer
		prev := zlog.Logger
		zlog.Logger = zerolog.New(&buf)
		t.Cleanup(func() { zlog.Logger = prev })

		auth, _ := newAuthFixture(t, loginBackend(t, `{"id": "1", "email": "jo@example.com", "role": "patient"}`))

		require.NoError(t, auth.Login(context.Background(), services.LoginCredentials{
			Email:    "jo@example.com",
			Password: "secret123",
			UserType: entities.UserTypeResearcher,
		}))

		logged := buf.String()
		assert.Contains(t, logged, `"requested_role":"researcher"`)
		assert.Contains(t, logged, "server role differs from requested role")
	})

	t.Run("notifies session listeners", func(t *testing.T) {
		auth, _ := newAuthFixture(t, loginBackend(t, `{"id": "1", "email": "jo@example.com", "role": "patient"}`))

		var notified atomic.Pointer[entities.User]
		auth.OnSessionChange(func(user *entities.User) {
			notified.Store(user)
		})

		require.NoError(t, auth.Login(context.Background(), services.LoginCredentials{
			Email: "jo@example.com", Password: "secret123",
		}))

		require.NotNil(t, notified.Load())
		assert.Equal(t, entities.ID("1"), notified.Load().ID)
	})
}

func TestAuthService_Register(t *testing.T) {
	t.Run("mismatched passwords never reach the network", func(t *testing.T) {
		var calls atomic.Int32
		auth, _ := newAuthFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		}))

		err := auth.Register(context.Background(), services.RegisterData{
			Email:           "jo@example.com",
			Password:        "secret123",
			ConfirmPassword: "secret124",
			UserType:        entities.UserTypePatient,
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		assert.Contains(t, err.Error(), "Passwords do not match")
		assert.Zero(t, calls.Load())
	})

	t.Run("short password never reaches the network", func(t *testing.T) {
		var calls atomic.Int32
		auth, _ := newAuthFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		}))

		err := auth.Register(context.Background(), services.RegisterData{
			Email:           "jo@example.com",
			Password:        "abc",
			ConfirmPassword: "abc",
			UserType:        entities.UserTypePatient,
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		assert.Zero(t, calls.Load())
	})

	t.Run("patient registration derives a unique username", func(t *testing.T) {
		var payload map[string]any
		auth, _ := newAuthFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/register/patient/", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			w.Write([]byte(`{"success": true}`))
		}))

		err := auth.Register(context.Background(), services.RegisterData{
			Email:           "jo.miller@example.com",
			Password:        "secret123",
			ConfirmPassword: "secret123",
			FirstName:       "Jo",
			LastName:        "Miller",
			UserType:        entities.UserTypePatient,
			DateOfBirth:     "1980-02-01",
			Gender:          "female",
			CancerType:      "breast cancer",
			Phone:           "0801",
		})

		require.NoError(t, err)
		username, _ := payload["username"].(string)
		assert.True(t, strings.HasPrefix(username, "jo.miller"))
		assert.Greater(t, len(username), len("jo.miller"))
		assert.Equal(t, "breast cancer", payload["cancer_type"])
		assert.Equal(t, "1980-02-01", payload["date_of_birth"])
	})

	t.Run("researcher registration maps company to institution", func(t *testing.T) {
		var payload map[string]any
		auth, _ := newAuthFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/register/researcher/", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			w.Write([]byte(`{"success": true}`))
		}))

		err := auth.Register(context.Background(), services.RegisterData{
			Email:           "dr@example.com",
			Password:        "secret123",
			ConfirmPassword: "secret123",
			UserType:        entities.UserTypeResearcher,
			Title:           "Dr.",
			Company:         "UCH",
			Specialization:  "Oncology",
		})

		require.NoError(t, err)
		assert.Equal(t, "UCH", payload["institution"])
		assert.Equal(t, "Oncology", payload["specialization"])
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("clears memory and the persisted snapshot", func(t *testing.T) {
		auth, store := newAuthFixture(t, loginBackend(t, `{"id": "1", "email": "jo@example.com", "role": "patient"}`))
		require.NoError(t, auth.Login(context.Background(), services.LoginCredentials{
			Email: "jo@example.com", Password: "secret123",
		}))

		var lastNotified atomic.Pointer[entities.User]
		sentinel := &entities.User{ID: "sentinel"}
		lastNotified.Store(sentinel)
		auth.OnSessionChange(func(user *entities.User) {
			lastNotified.Store(user)
		})

		auth.Logout()

		assert.Nil(t, auth.CurrentUser())
		assert.Equal(t, services.SessionAnonymous, auth.State())
		assert.Nil(t, lastNotified.Load())

		persisted, err := store.Load()
		assert.NoError(t, err)
		assert.Nil(t, persisted)
	})
}

func TestAuthService_RestoresSession(t *testing.T) {
	store := session.NewFileStore(t.TempDir())
	require.NoError(t, store.Save(&entities.User{ID: "7", Email: "jo@example.com", UserType: entities.UserTypePatient}))

	client, err := medconnect.New("http://localhost:1", time.Second)
	require.NoError(t, err)

	auth := services.NewAuthService(client, store)

	assert.True(t, auth.IsAuthenticated())
	assert.Equal(t, services.SessionAuthenticated, auth.State())
	assert.Equal(t, entities.ID("7"), auth.CurrentUser().ID)
}

func TestAuthService_UpdateLocalProfile(t *testing.T) {
	auth, store := newAuthFixture(t, loginBackend(t, `{"id": "1", "email": "jo@example.com", "role": "patient", "first_name": "Jo"}`))
	require.NoError(t, auth.Login(context.Background(), services.LoginCredentials{
		Email: "jo@example.com", Password: "secret123",
	}))

	err := auth.UpdateLocalProfile(context.Background(), func(user *entities.User) {
		user.FirstName = "Joanna"
	})

	require.NoError(t, err)
	assert.Equal(t, "Joanna", auth.CurrentUser().FirstName)

	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "Joanna", persisted.FirstName)
}
