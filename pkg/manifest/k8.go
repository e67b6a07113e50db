package manifest

import (
	"fmt"
	"strconv"
	"strings"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/yaml"

	"github.com/okik-ml/okik/pkg/config"
	"github.com/okik-ml/okik/pkg/errors"
)

// GPU resource name requested from the device plugin
const gpuResource = corev1.ResourceName("nvidia.com/gpu")

// Environment variable enumerating the device indices visible to one replica
const visibleDevicesEnv = "NVIDIA_VISIBLE_DEVICES"

// k8Manifest builds an apps/v1 Deployment for the descriptor and flattens
// it into generic mapping form. Memory is always requested; a GPU
// request/limit is added only for GPU-class accelerator types.
func k8Manifest(d *config.ServiceDescriptor, image *config.ImageRecord) (Manifest, []string, error) {
	img, _, warnings := imageReference(d, image)

	limits := corev1.ResourceList{
		corev1.ResourceMemory: resource.MustParse(fmt.Sprintf("%dGi", d.Resources.Memory)),
	}
	if d.Resources.Type.IsGPU() {
		limits[gpuResource] = *resource.NewQuantity(int64(d.Resources.Count), resource.DecimalSI)
	}

	labels := map[string]string{"app": d.Name}
	deploy := appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "apps/v1",
			Kind:       "Deployment",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name: d.Name,
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.To(int32(d.Replicas)),
			Selector: &metav1.LabelSelector{
				MatchLabels: labels,
			},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: labels,
				},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{
						{
							Name:  fmt.Sprintf("%s-container", d.Name),
							Image: img,
							Resources: corev1.ResourceRequirements{
								Limits:   limits,
								Requests: limits,
							},
							Env: []corev1.EnvVar{
								{
									Name:  visibleDevicesEnv,
									Value: deviceIndices(d.Resources.Count),
								},
							},
						},
					},
				},
			},
		},
	}

	m, err := flatten(&deploy)
	if err != nil {
		return nil, nil, err
	}
	return m, warnings, nil
}

// deviceIndices joins 0..count-1 into the comma-separated form the
// container runtime expects.
func deviceIndices(count int) string {
	indices := make([]string, count)
	for i := range indices {
		indices[i] = strconv.Itoa(i)
	}
	return strings.Join(indices, ",")
}

// flatten converts a typed API object into the generic mapping form used
// by the store, going through its JSON tags so field names match what
// kubectl would accept.
func flatten(obj any) (Manifest, error) {
	raw, err := yaml.Marshal(obj)
	if err != nil {
		return nil, errors.NewValidationError("manifest", fmt.Sprintf("marshal deployment: %v", err))
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, errors.NewValidationError("manifest", fmt.Sprintf("unmarshal deployment: %v", err))
	}
	return m, nil
}
