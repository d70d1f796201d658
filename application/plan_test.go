package application_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/monorelease/application"
	"github.com/rios0rios0/monorelease/domain"
)

func TestReadPlan(t *testing.T) {
	t.Parallel()

	t.Run("should load a plan file", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "plan.json")
		content := `[{"name": "pkg-a", "version": "2.0.0"}, {"name": "pkg-b", "version": "0.3.1"}]`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		// when
		plan, err := application.ReadPlan(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, []domain.VersionUpdate{
			{Name: "pkg-a", Version: "2.0.0"},
			{Name: "pkg-b", Version: "0.3.1"},
		}, plan)
	})

	t.Run("should fail on a missing file", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := application.ReadPlan(filepath.Join(t.TempDir(), "absent.json"))

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read release plan")
	})

	t.Run("should fail on malformed JSON", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "plan.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"name": "oops"}`), 0o644))

		// when
		_, err := application.ReadPlan(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse release plan")
	})

	t.Run("should reject an empty plan", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "plan.json")
		require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

		// when
		_, err := application.ReadPlan(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is empty")
	})
}
