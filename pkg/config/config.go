// Package config builds the validated deployment intent for a declared
// service unit: its accelerator resources, replica count and target
// backend. Construction is all-or-nothing; no partially validated value
// is ever returned.
package config

import (
	"fmt"
	"strings"

	"github.com/okik-ml/okik/pkg/catalog"
	"github.com/okik-ml/okik/pkg/errors"
)

var backends = []Backend{
	BackendK8,
	BackendOkik,
	BackendRay,
	BackendSky,
}

// ParseBackend validates s against the closed backend set.
func ParseBackend(s string) (Backend, error) {
	for _, b := range backends {
		if s == string(b) {
			return b, nil
		}
	}
	return "", errors.NewValidationError("backend", fmt.Sprintf("unknown backend %q", s))
}

// Backends returns the closed backend set, in declaration order.
func Backends() []Backend {
	out := make([]Backend, len(backends))
	copy(out, backends)
	return out
}

// NewResourceConfig validates an already-typed accelerator request.
func NewResourceConfig(accType, device string, count, memory int) (*ResourceConfig, error) {
	t, err := catalog.ParseType(accType)
	if err != nil {
		return nil, err
	}
	d, err := catalog.ParseDevice(device)
	if err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, errors.NewValidationError("count", fmt.Sprintf("must be >= 1, got %d", count))
	}
	if memory < 1 {
		return nil, errors.NewValidationError("memory", fmt.Sprintf("must be >= 1 GiB, got %d", memory))
	}
	return &ResourceConfig{Type: t, Device: d, Count: count, Memory: memory}, nil
}

// NewResourceConfigFromMap validates raw key/value input, as decoded from
// a YAML or JSON document. Required keys: type, device, count, memory.
func NewResourceConfigFromMap(raw map[string]any) (*ResourceConfig, error) {
	accType, err := stringField(raw, "type")
	if err != nil {
		return nil, err
	}
	device, err := stringField(raw, "device")
	if err != nil {
		return nil, err
	}
	count, err := intField(raw, "count")
	if err != nil {
		return nil, err
	}
	memory, err := intField(raw, "memory")
	if err != nil {
		return nil, err
	}
	return NewResourceConfig(accType, device, count, memory)
}

// NewServiceDescriptor binds a unit name to its validated resources,
// replica count and backend. The manifest name is the lower-cased unit name.
func NewServiceDescriptor(unitName string, replicas int, resources ResourceConfig, backend Backend) (*ServiceDescriptor, error) {
	if strings.TrimSpace(unitName) == "" {
		return nil, errors.NewValidationError("name", "unit name must not be empty")
	}
	if replicas < 1 {
		return nil, errors.NewValidationError("replicas", fmt.Sprintf("must be >= 1, got %d", replicas))
	}
	if _, err := ParseBackend(string(backend)); err != nil {
		return nil, err
	}
	// revalidate in case the struct was built by hand
	if _, err := NewResourceConfig(string(resources.Type), string(resources.Device), resources.Count, resources.Memory); err != nil {
		return nil, err
	}
	return &ServiceDescriptor{
		Name:      strings.ToLower(unitName),
		Replicas:  replicas,
		Resources: resources,
		Backend:   backend,
	}, nil
}

// AsMap serializes the resource config into plain mapping form for
// embedding in a generated manifest.
func (r ResourceConfig) AsMap() map[string]any {
	return map[string]any{
		"type":   string(r.Type),
		"device": string(r.Device),
		"count":  r.Count,
		"memory": r.Memory,
	}
}

func stringField(raw map[string]any, key string) (string, error) {
	v, ok := raw[key]
	if !ok {
		return "", errors.NewValidationError(key, "required field is missing")
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.NewValidationError(key, fmt.Sprintf("expected string, got %T", v))
	}
	return s, nil
}

// intField accepts the numeric types YAML and JSON decoders produce.
func intField(raw map[string]any, key string) (int, error) {
	v, ok := raw[key]
	if !ok {
		return 0, errors.NewValidationError(key, "required field is missing")
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, errors.NewValidationError(key, fmt.Sprintf("expected integer, got %v", n))
		}
		return int(n), nil
	default:
		return 0, errors.NewValidationError(key, fmt.Sprintf("expected integer, got %T", v))
	}
}
