package medconnect_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medconnect/medconnect-client/internal/domain/entities"
	"github.com/medconnect/medconnect-client/internal/infrastructure/clients/medconnect"
	apperrors "github.com/medconnect/medconnect-client/pkg/errors"
)

func newClient(t *testing.T, handler http.Handler) *medconnect.HTTPClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := medconnect.New(server.URL, 5*time.Second)
	require.NoError(t, err)
	return client
}

func TestLogin(t *testing.T) {
	t.Run("parses user and keeps the session cookie", func(t *testing.T) {
		var profileCookie string
		mux := http.NewServeMux()
		mux.HandleFunc("/api/login/", func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "jo@example.com", body["username_or_email"])
			assert.Equal(t, "secret123", body["password"])

			http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "abc"})
			// numeric id on purpose, the Django serializer sends both
			w.Write([]byte(`{"success": true, "user": {"id": 7, "email": "jo@example.com", "role": "patient", "first_name": "Jo", "last_name": "Miller"}}`))
		})
		mux.HandleFunc("/api/profile/", func(w http.ResponseWriter, r *http.Request) {
			if c, err := r.Cookie("sessionid"); err == nil {
				profileCookie = c.Value
			}
			w.Write([]byte(`{"success": true, "profile": {"id": "7", "email": "jo@example.com", "role": "patient"}}`))
		})
		client := newClient(t, mux)

		user, err := client.Login(context.Background(), "jo@example.com", "secret123")

		require.NoError(t, err)
		assert.Equal(t, entities.ID("7"), user.ID)
		assert.Equal(t, entities.UserTypePatient, user.Role)

		_, err = client.GetProfile(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "abc", profileCookie, "session cookie should ride on later requests")
	})

	t.Run("surfaces the server message on rejection", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success": false, "message": "Invalid credentials"}`))
		}))

		user, err := client.Login(context.Background(), "jo@example.com", "wrong")

		assert.Nil(t, user)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
		assert.Contains(t, err.Error(), "Invalid credentials")
	})

	t.Run("falls back to a generic message", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success": false}`))
		}))

		_, err := client.Login(context.Background(), "jo@example.com", "wrong")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Login failed")
	})
}

func TestErrorMapping(t *testing.T) {
	t.Run("401 becomes an unauthorized error", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success": false, "message": "Not authenticated"}`))
		}))

		_, err := client.GetProfile(context.Background())

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
		assert.Contains(t, err.Error(), "Not authenticated")
	})

	t.Run("other error statuses become external errors", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`boom`))
		}))

		_, err := client.ListStudies(context.Background())

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
		assert.Contains(t, err.Error(), "status 500")
	})

	t.Run("unreachable backend becomes an external error", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()
		client, err := medconnect.New(server.URL, time.Second)
		require.NoError(t, err)

		_, err = client.ListStudies(context.Background())

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
		assert.Contains(t, err.Error(), "backend unreachable")
	})
}

func TestCreatePost(t *testing.T) {
	t.Run("text-only posts go as JSON", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "hello", body["content"])
			w.Write([]byte(`{"success": true}`))
		}))

		err := client.CreatePost(context.Background(), "c1", "hello", nil)
		assert.NoError(t, err)
	})

	t.Run("posts with attachments go as multipart", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "with file", r.FormValue("content"))

			file, header, err := r.FormFile("attachments")
			require.NoError(t, err)
			defer file.Close()
			assert.Equal(t, "scan.pdf", header.Filename)
			w.Write([]byte(`{"success": true}`))
		}))

		attachments := []medconnect.Attachment{{
			FieldName: "attachments",
			Filename:  "scan.pdf",
			Content:   strings.NewReader("%PDF-1.4"),
		}}
		err := client.CreatePost(context.Background(), "c1", "with file", attachments)
		assert.NoError(t, err)
	})
}

func TestSearchQueries(t *testing.T) {
	t.Run("patient search sends filters without study phase", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query := r.URL.Query()
			assert.Equal(t, "lung cancer", query.Get("condition"))
			assert.Equal(t, "18-65", query.Get("ageRange"))
			assert.Empty(t, query.Get("studyPhase"))
			w.Write([]byte(`{"success": true, "patients": [{"id": "p1", "matchScore": 87}]}`))
		}))

		matches, err := client.SearchPatients(context.Background(), entities.SearchFilters{
			Condition:  "lung cancer",
			AgeMin:     18,
			AgeMax:     65,
			StudyPhase: "Phase 2",
		})

		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, entities.ID("p1"), matches[0].ID)
	})

	t.Run("researcher search includes study phase", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Phase 2", r.URL.Query().Get("studyPhase"))
			w.Write([]byte(`{"success": true, "researchers": []}`))
		}))

		_, err := client.SearchResearchers(context.Background(), entities.SearchFilters{StudyPhase: "Phase 2"})
		assert.NoError(t, err)
	})
}

func TestLenientListEndpoints(t *testing.T) {
	// Applicant, document and study-appointment listings return whatever the
	// body carried even without an explicit success flag.
	t.Run("applicants come back without a success flag", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"applicants": [{"id": "a1", "patientId": 3, "status": "applied"}]}`))
		}))

		applicants, err := client.ListStudyApplicants(context.Background(), "s1")

		require.NoError(t, err)
		require.Len(t, applicants, 1)
		assert.Equal(t, entities.ID("3"), applicants[0].PatientID)
		assert.Equal(t, entities.ApplicantApplied, applicants[0].Status)
	})
}
