/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// okik-manifests registers the services declared in a project file and
// writes their deployment manifests under the services root. It is the
// minimal registration host; endpoint serving and container builds live
// in other commands.
package main

import (
	"flag"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"

	"github.com/okik-ml/okik/internal/logger"
	"github.com/okik-ml/okik/internal/metrics"
	"github.com/okik-ml/okik/pkg/config"
	"github.com/okik-ml/okik/pkg/registry"
	"github.com/okik-ml/okik/pkg/store"
)

// serviceDecl mirrors one entry of the declarations file. Resources stay
// untyped here; validation happens during registration.
type serviceDecl struct {
	Name      string         `yaml:"name"`
	Replicas  int            `yaml:"replicas"`
	Backend   string         `yaml:"backend"`
	Resources map[string]any `yaml:"resources"`
	Endpoints []string       `yaml:"endpoints"`
}

type declarations struct {
	Services []serviceDecl `yaml:"services"`
}

func main() {
	var (
		declFile     string
		servicesRoot string
		imageRecord  string
	)
	flag.StringVar(&declFile, "f", "okik.yaml", "Path to the service declarations file.")
	flag.StringVar(&servicesRoot, "services-root", config.DefaultServicesRoot, "Directory manifests are written under.")
	flag.StringVar(&imageRecord, "image-record", config.DefaultImageRecordFile, "Path to the build record with the image reference.")
	flag.Parse()

	log, err := logger.Init()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	data, err := os.ReadFile(declFile)
	if err != nil {
		log.Errorw("unable to read service declarations", "path", declFile, "error", err)
		os.Exit(1)
	}
	var decls declarations
	if err := yaml.Unmarshal(data, &decls); err != nil {
		log.Errorw("unable to parse service declarations", "path", declFile, "error", err)
		os.Exit(1)
	}
	if len(decls.Services) == 0 {
		log.Warnw("no services declared", "path", declFile)
		return
	}

	rec, err := registry.LoadImageRecord(imageRecord)
	if err != nil {
		log.Errorw("unable to load image record", "path", imageRecord, "error", err)
		os.Exit(1)
	}

	emitter := metrics.InitAndEmitter(prometheus.DefaultRegisterer)
	registrar := registry.NewRegistrar(
		store.New(servicesRoot),
		registry.WithImageRecord(rec),
		registry.WithMetrics(emitter),
	)

	failed := false
	for _, decl := range decls.Services {
		unit := registry.NewServiceUnit(decl.Name)
		for _, ep := range decl.Endpoints {
			unit.AddEndpoint(ep)
		}

		replicas := decl.Replicas
		if replicas == 0 {
			replicas = config.DefaultReplicas
		}

		if _, err := registrar.Register(unit, decl.Resources, replicas, decl.Backend); err != nil {
			log.Errorw("registration failed", "service", decl.Name, "backend", decl.Backend, "error", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
