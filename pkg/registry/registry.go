// Package registry runs service registration: it validates a declared
// unit's resource input, builds its service descriptor, generates the
// backend manifest and persists it. Registration happens once per unit
// at process start; endpoint serving belongs to the host, not here.
package registry

import (
	"github.com/okik-ml/okik/internal/logger"
	"github.com/okik-ml/okik/internal/metrics"
	"github.com/okik-ml/okik/pkg/config"
	"github.com/okik-ml/okik/pkg/errors"
	"github.com/okik-ml/okik/pkg/manifest"
	"github.com/okik-ml/okik/pkg/store"
)

// Registrar binds declared units to persisted manifests. The host
// constructs it with its collaborators; there is no package-level state.
type Registrar struct {
	store   *store.Store
	image   *config.ImageRecord
	emitter *metrics.Emitter
}

// Option customizes a Registrar.
type Option func(*Registrar)

// WithImageRecord supplies the build record referenced by generated
// manifests. Without it, placeholder image references are used.
func WithImageRecord(rec *config.ImageRecord) Option {
	return func(r *Registrar) { r.image = rec }
}

// WithMetrics wires an emitter for registration metrics.
func WithMetrics(e *metrics.Emitter) Option {
	return func(r *Registrar) { r.emitter = e }
}

func NewRegistrar(s *store.Store, opts ...Option) *Registrar {
	r := &Registrar{store: s}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Registration is the result of registering one unit.
type Registration struct {
	Descriptor *config.ServiceDescriptor
	Endpoints  []string // operation names the host will expose
	Path       string   // manifest file the descriptor was persisted to
	Warnings   []string // surfaced, non-fatal gaps (e.g. missing image record)
}

// Register validates the raw resource input, builds the unit's
// descriptor, generates the backend manifest and persists it. Any
// validation failure aborts before generation or persistence; every
// error kind is surfaced to the caller and none is retried.
func (r *Registrar) Register(unit Unit, resources map[string]any, replicas int, backend string) (*Registration, error) {
	res, err := config.NewResourceConfigFromMap(resources)
	if err != nil {
		r.emitter.EmitError(backend, errors.Kind(err))
		return nil, err
	}

	bk, err := config.ParseBackend(backend)
	if err != nil {
		r.emitter.EmitError(backend, errors.Kind(err))
		return nil, err
	}

	desc, err := config.NewServiceDescriptor(unit.Name(), replicas, *res, bk)
	if err != nil {
		r.emitter.EmitError(backend, errors.Kind(err))
		return nil, err
	}

	m, warnings, err := manifest.Generate(desc, r.image)
	if err != nil {
		r.emitter.EmitError(backend, errors.Kind(err))
		return nil, err
	}

	if err := r.store.Persist(desc.Backend, desc.Name, m); err != nil {
		r.emitter.EmitError(backend, errors.Kind(err))
		return nil, err
	}
	r.emitter.EmitManifestWrite(backend)

	path := r.store.PathFor(desc.Backend, desc.Name)
	endpoints := unit.Endpoints()

	for _, w := range warnings {
		logger.Log.Warnw("registration warning", "service", desc.Name, "warning", w)
	}
	logger.Log.Infow("registered service",
		"service", desc.Name,
		"backend", string(desc.Backend),
		"replicas", desc.Replicas,
		"endpoints", len(endpoints),
		"manifest", path)

	r.emitter.EmitRegistered(desc.Name, backend, desc.Replicas)

	return &Registration{
		Descriptor: desc,
		Endpoints:  endpoints,
		Path:       path,
		Warnings:   warnings,
	}, nil
}
