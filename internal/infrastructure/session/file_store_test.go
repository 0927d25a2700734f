package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medconnect/medconnect-client/internal/domain/entities"
	"github.com/medconnect/medconnect-client/internal/infrastructure/session"
)

func TestFileStore(t *testing.T) {
	t.Run("load with no snapshot returns nil user", func(t *testing.T) {
		store := session.NewFileStore(t.TempDir())

		user, err := store.Load()

		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("save then load round trips the user", func(t *testing.T) {
		store := session.NewFileStore(t.TempDir())
		saved := &entities.User{
			ID:        "42",
			Email:     "jo@example.com",
			UserType:  entities.UserTypePatient,
			FirstName: "Jo",
			LastName:  "Miller",
			Patient: &entities.PatientSummary{
				Conditions:  []string{"breast cancer"},
				Medications: []string{},
				Allergies:   []string{},
			},
		}

		require.NoError(t, store.Save(saved))
		loaded, err := store.Load()

		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, saved, loaded)
	})

	t.Run("save creates the directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "medconnect")
		store := session.NewFileStore(dir)

		require.NoError(t, store.Save(&entities.User{ID: "1"}))

		_, err := os.Stat(filepath.Join(dir, "session.json"))
		assert.NoError(t, err)
	})

	t.Run("corrupt snapshot is discarded", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "session.json"), []byte("{not json"), 0o600))
		store := session.NewFileStore(dir)

		user, err := store.Load()

		assert.NoError(t, err)
		assert.Nil(t, user)
		_, statErr := os.Stat(filepath.Join(dir, "session.json"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("clear removes the snapshot and tolerates absence", func(t *testing.T) {
		store := session.NewFileStore(t.TempDir())
		require.NoError(t, store.Save(&entities.User{ID: "1"}))

		assert.NoError(t, store.Clear())
		assert.NoError(t, store.Clear())

		user, err := store.Load()
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("save rejects nil user", func(t *testing.T) {
		store := session.NewFileStore(t.TempDir())
		assert.Error(t, store.Save(nil))
	})
}
