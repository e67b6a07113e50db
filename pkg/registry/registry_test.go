package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okik-ml/okik/pkg/config"
	"github.com/okik-ml/okik/pkg/errors"
	"github.com/okik-ml/okik/pkg/store"
)

func classifierResources() map[string]any {
	return map[string]any{
		"type":   "cuda",
		"device": "A100 80GB",
		"count":  2,
		"memory": 40,
	}
}

func TestRegisterK8MissingImage(t *testing.T) {
	root := t.TempDir()
	registrar := NewRegistrar(store.New(root))
	unit := NewServiceUnit("Classifier").AddEndpoint("predict").AddEndpoint("health")

	reg, err := registrar.Register(unit, classifierResources(), 2, "k8")
	require.NoError(t, err)

	assert.Equal(t, "classifier", reg.Descriptor.Name)
	assert.Equal(t, []string{"predict", "health"}, reg.Endpoints)
	assert.Equal(t, filepath.Join(root, "k8", "classifier-config.yaml"), reg.Path)
	require.Len(t, reg.Warnings, 1, "missing image record surfaces a warning")
	assert.Contains(t, reg.Warnings[0], "classifier:latest")

	persisted, err := store.New(root).Load(config.BackendK8, "classifier")
	require.NoError(t, err)
	assert.Equal(t, "Deployment", persisted["kind"])
}

func TestRegisterAbortsOnValidationFailure(t *testing.T) {
	root := t.TempDir()
	registrar := NewRegistrar(store.New(root))
	unit := NewServiceUnit("Classifier")

	bad := classifierResources()
	bad["count"] = 0

	reg, err := registrar.Register(unit, bad, 1, "k8")
	require.Error(t, err)
	assert.Nil(t, reg)

	var ve *errors.ValidationError
	require.ErrorAs(t, err, &ve)

	// nothing may be generated or persisted after a validation failure
	entries, readErr := os.ReadDir(root)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestRegisterUnsupportedBackendPersistsNothing(t *testing.T) {
	root := t.TempDir()
	registrar := NewRegistrar(store.New(root))

	_, err := registrar.Register(NewServiceUnit("Classifier"), classifierResources(), 1, "ray")
	var ub *errors.UnsupportedBackendError
	require.ErrorAs(t, err, &ub)
	assert.Equal(t, "ray", ub.Backend)

	entries, readErr := os.ReadDir(root)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

// Re-registering against okik replaces only the unit's own entry; the last
// declared replica count wins and unrelated keys survive.
func TestRegisterOkikReplicasLastWriteWins(t *testing.T) {
	root := t.TempDir()
	s := store.New(root)
	registrar := NewRegistrar(s)

	_, err := registrar.Register(NewServiceUnit("Embedder"), classifierResources(), 2, "okik")
	require.NoError(t, err)

	_, err = registrar.Register(NewServiceUnit("Classifier"), classifierResources(), 1, "okik")
	require.NoError(t, err)
	_, err = registrar.Register(NewServiceUnit("Classifier"), classifierResources(), 3, "okik")
	require.NoError(t, err)

	persisted, err := s.Load(config.BackendOkik, "classifier")
	require.NoError(t, err)

	classifier, ok := persisted["classifier"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 3, classifier["replicas"])

	embedder, ok := persisted["embedder"].(map[string]any)
	require.True(t, ok, "unrelated unit must not be lost")
	assert.Equal(t, 2, embedder["replicas"])
}

func TestRegisterWithImageRecord(t *testing.T) {
	root := t.TempDir()
	rec := &config.ImageRecord{ImageName: "registry.local/classifier:v3", AppName: "classifier"}
	registrar := NewRegistrar(store.New(root), WithImageRecord(rec))

	reg, err := registrar.Register(NewServiceUnit("Classifier"), classifierResources(), 1, "k8")
	require.NoError(t, err)
	assert.Empty(t, reg.Warnings)
}

func TestLoadImageRecord(t *testing.T) {
	t.Run("missing file is not an error", func(t *testing.T) {
		rec, err := LoadImageRecord(filepath.Join(t.TempDir(), "okik.build.yaml"))
		require.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("reads image and app name", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "okik.build.yaml")
		require.NoError(t, os.WriteFile(path, []byte("image_name: registry.local/app:v1\napp_name: demo\n"), 0o644))

		rec, err := LoadImageRecord(path)
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, "registry.local/app:v1", rec.ImageName)
		assert.Equal(t, "demo", rec.AppName)
	})

	t.Run("unparsable file is corrupt state", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "okik.build.yaml")
		require.NoError(t, os.WriteFile(path, []byte("image_name: [broken"), 0o644))

		_, err := LoadImageRecord(path)
		var corrupt *errors.CorruptStateError
		require.ErrorAs(t, err, &corrupt)
	})
}

func TestServiceUnit(t *testing.T) {
	unit := NewServiceUnit("Classifier").AddEndpoint("predict")
	unit.AddEndpoint("health")

	assert.Equal(t, "Classifier", unit.Name())
	assert.Equal(t, []string{"predict", "health"}, unit.Endpoints())

	// the returned slice is a copy
	eps := unit.Endpoints()
	eps[0] = "mutated"
	assert.Equal(t, []string{"predict", "health"}, unit.Endpoints())
}
