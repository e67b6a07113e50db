// Package store persists generated manifests as YAML under a services
// root directory, merging each write with whatever was previously
// persisted for the same target file.
package store

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/okik-ml/okik/pkg/config"
	"github.com/okik-ml/okik/pkg/errors"
	"github.com/okik-ml/okik/pkg/manifest"
)

// Store writes manifests below a root directory, one subdirectory per
// backend. Kubernetes-style backends get one file per unit; okik keeps
// all units of a project in a single shared file.
type Store struct {
	root string

	mu    sync.Mutex
	locks map[string]*sync.Mutex // per target path
}

func New(root string) *Store {
	if root == "" {
		root = config.DefaultServicesRoot
	}
	return &Store{
		root:  root,
		locks: make(map[string]*sync.Mutex),
	}
}

// Root returns the services root directory.
func (s *Store) Root() string { return s.root }

// PathFor derives the target file for a (backend, unit) pair.
func (s *Store) PathFor(backend config.Backend, unitName string) string {
	switch backend {
	case config.BackendOkik:
		return filepath.Join(s.root, string(backend), "services.yaml")
	default:
		return filepath.Join(s.root, string(backend), fmt.Sprintf("%s-config.yaml", unitName))
	}
}

// Persist merges m over the manifest previously persisted for the
// (backend, unit) target and writes the result back. The read-merge-write
// sequence is a critical section per target path, so concurrent
// registrations against the same file cannot lose each other's updates.
// An existing file that cannot be parsed aborts the write with a
// CorruptStateError rather than being overwritten.
func (s *Store) Persist(backend config.Backend, unitName string, m manifest.Manifest) error {
	path := s.PathFor(backend, unitName)

	lock := s.pathLock(path)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.load(path)
	if err != nil {
		return err
	}

	merged := make(manifest.Manifest, len(existing)+len(m))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range m {
		merged[k] = v
	}

	return s.write(path, merged)
}

// Load reads the manifest currently persisted for the (backend, unit)
// target. A missing file yields an empty manifest.
func (s *Store) Load(backend config.Backend, unitName string) (manifest.Manifest, error) {
	return s.load(s.PathFor(backend, unitName))
}

func (s *Store) load(path string) (manifest.Manifest, error) {
	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return manifest.Manifest{}, nil
	}
	if err != nil {
		return nil, errors.NewIoError("read", path, err)
	}
	var m manifest.Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.NewCorruptStateError(path, err)
	}
	if m == nil {
		m = manifest.Manifest{}
	}
	return m, nil
}

// write serializes the manifest to a temp file in the target directory
// and renames it into place, so readers never observe a partial document.
func (s *Store) write(path string, m manifest.Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return errors.NewIoError("encode", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.NewIoError("mkdir", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.NewIoError("create", dir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewIoError("write", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.NewIoError("close", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.NewIoError("rename", path, err)
	}
	return nil
}

func (s *Store) pathLock(path string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[path]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[path] = lock
	}
	return lock
}
