// Package manifest turns a validated service descriptor into a
// backend-specific deployment manifest. Generation is pure: identical
// inputs yield byte-identical documents, and the returned mapping is
// built fresh on every call.
package manifest

import (
	"fmt"

	"github.com/okik-ml/okik/pkg/config"
	"github.com/okik-ml/okik/pkg/errors"
)

// Manifest is the generic mapping form of one deployment document.
// It is never mutated after generation; the store merges by key.
type Manifest map[string]any

// Generate produces the manifest for the descriptor's backend. The image
// record may be nil, in which case a deterministic placeholder image
// reference is substituted and a warning is returned alongside the
// manifest. Backends without a generator fail with an
// UnsupportedBackendError.
func Generate(d *config.ServiceDescriptor, image *config.ImageRecord) (Manifest, []string, error) {
	switch d.Backend {
	case config.BackendK8:
		return k8Manifest(d, image)
	case config.BackendOkik:
		return okikManifest(d, image)
	case config.BackendRay, config.BackendSky:
		return nil, nil, errors.NewUnsupportedBackendError(string(d.Backend))
	default:
		// descriptor construction rejects anything outside the closed set
		return nil, nil, errors.NewUnsupportedBackendError(string(d.Backend))
	}
}

// imageReference resolves the container image for the manifest. Without a
// build record it falls back to "<app>:latest" and reports the gap to the
// caller instead of failing registration.
func imageReference(d *config.ServiceDescriptor, image *config.ImageRecord) (img, app string, warnings []string) {
	if image != nil && image.ImageName != "" {
		app = image.AppName
		if app == "" {
			app = d.Name
		}
		return image.ImageName, app, nil
	}
	img = fmt.Sprintf("%s:latest", d.Name)
	warnings = []string{
		fmt.Sprintf("no image record found for %q; using placeholder image %q, run the build step before deploying", d.Name, img),
	}
	return img, d.Name, warnings
}
