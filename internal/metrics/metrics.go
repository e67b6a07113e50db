package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	registrationsTotal *prometheus.CounterVec
	registrationErrors *prometheus.CounterVec
	manifestWrites     *prometheus.CounterVec
	declaredReplicas   *prometheus.GaugeVec
)

// Init registers all custom metrics with the provided registry.
func Init(registry prometheus.Registerer) {
	registrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "okik_registrations_total",
			Help: "Total number of successful service registrations",
		},
		[]string{"service", "backend"},
	)
	registrationErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "okik_registration_errors_total",
			Help: "Total number of failed service registrations",
		},
		[]string{"backend", "reason"},
	)
	manifestWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "okik_manifest_writes_total",
			Help: "Total number of manifest files written",
		},
		[]string{"backend"},
	)
	declaredReplicas = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "okik_declared_replicas",
			Help: "Replica count most recently declared for each service",
		},
		[]string{"service", "backend"},
	)

	registry.MustRegister(registrationsTotal)
	registry.MustRegister(registrationErrors)
	registry.MustRegister(manifestWrites)
	registry.MustRegister(declaredReplicas)
}

// InitAndEmitter registers metrics and creates an emitter in one call.
func InitAndEmitter(registry prometheus.Registerer) *Emitter {
	Init(registry)
	return NewEmitter()
}

// Emitter handles emission of registration metrics. A nil *Emitter is
// valid and emits nothing, so callers can wire metrics in optionally.
type Emitter struct{}

func NewEmitter() *Emitter {
	return &Emitter{}
}

// EmitRegistered records a completed registration.
func (e *Emitter) EmitRegistered(service, backend string, replicas int) {
	if e == nil || registrationsTotal == nil {
		return
	}
	registrationsTotal.WithLabelValues(service, backend).Inc()
	declaredReplicas.WithLabelValues(service, backend).Set(float64(replicas))
}

// EmitError records a failed registration.
func (e *Emitter) EmitError(backend, reason string) {
	if e == nil || registrationErrors == nil {
		return
	}
	registrationErrors.WithLabelValues(backend, reason).Inc()
}

// EmitManifestWrite records a persisted manifest file.
func (e *Emitter) EmitManifestWrite(backend string) {
	if e == nil || manifestWrites == nil {
		return
	}
	manifestWrites.WithLabelValues(backend).Inc()
}
