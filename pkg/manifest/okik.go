package manifest

import "github.com/okik-ml/okik/pkg/config"

// Name of the environment variable a credential provider populates with
// the service token. Generated manifests carry the reference, never a
// token value.
const serviceTokenEnv = "OKIK_SERVICE_TOKEN"

// okikManifest builds the flat service document for okik's own backend.
// The document is keyed by unit name so that all services of one project
// share a single file and re-registration replaces only its own entry.
func okikManifest(d *config.ServiceDescriptor, image *config.ImageRecord) (Manifest, []string, error) {
	img, app, warnings := imageReference(d, image)

	m := Manifest{
		d.Name: map[string]any{
			"kind":      "service",
			"replicas":  d.Replicas,
			"resources": d.Resources.AsMap(),
			"port":      config.DefaultPort,
			"image":     img,
			"metadata": map[string]any{
				"name": d.Name,
				"app":  app,
				"auth": map[string]any{
					"tokenRef": serviceTokenEnv,
				},
			},
		},
	}
	return m, warnings, nil
}
