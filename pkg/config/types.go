package config

import "github.com/okik-ml/okik/pkg/catalog"

// Backend is the deployment system a manifest is generated for.
type Backend string

const (
	BackendK8   Backend = "k8"   // Kubernetes apps/v1 Deployment
	BackendOkik Backend = "okik" // okik's own flat service document
	BackendRay  Backend = "ray"  // reserved, no generator yet
	BackendSky  Backend = "sky"  // reserved, no generator yet
)

// Validated accelerator request for one replica of a service
type ResourceConfig struct {
	Type   catalog.AcceleratorType   `json:"type" yaml:"type"`     // accelerator class (e.g. cuda)
	Device catalog.AcceleratorDevice `json:"device" yaml:"device"` // device model (e.g. A100 80GB)
	Count  int                       `json:"count" yaml:"count"`   // number of devices, >= 1
	Memory int                       `json:"memory" yaml:"memory"` // GiB, >= 1
}

// Validated deployment intent for one declared service unit.
// Immutable once constructed.
type ServiceDescriptor struct {
	Name      string         `json:"name" yaml:"name"`           // lower-cased unit name
	Replicas  int            `json:"replicas" yaml:"replicas"`   // >= 1
	Resources ResourceConfig `json:"resources" yaml:"resources"` // per-replica accelerator request
	Backend   Backend        `json:"backend" yaml:"backend"`     // target deployment system
}

// ImageRecord is the build output this module only reads. It is written
// by the container build step and may legitimately be absent.
type ImageRecord struct {
	ImageName string `json:"image_name" yaml:"image_name"`
	AppName   string `json:"app_name" yaml:"app_name"`
}
