// Package config loads and saves model metadata: the nested configuration
// describing how an inference model was trained, which drives raw data
// acquisition and domain conversion.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"gwprep/internal/event"
)

// ModelMetadata mirrors the metadata bundled with a trained model.
type ModelMetadata struct {
	DatasetSettings DatasetSettings `yaml:"dataset_settings"`
	TrainSettings   TrainSettings   `yaml:"train_settings"`
}

// DatasetSettings describes the dataset the model was trained on.
type DatasetSettings struct {
	Domain DomainSpec `yaml:"domain"`
}

// DomainSpec declares the target data representation. Only the
// "FrequencyDomain" kind is supported; the factory in internal/domains
// rejects anything else.
type DomainSpec struct {
	Type         string  `yaml:"type"`
	FMin         float64 `yaml:"f_min"`
	FMax         float64 `yaml:"f_max"`
	DeltaF       float64 `yaml:"delta_f"`
	WindowFactor float64 `yaml:"window_factor"`
}

// TrainSettings holds the training-time configuration sections consumed by
// the data preparation pipeline.
type TrainSettings struct {
	Data DataSettings `yaml:"data"`
}

// DataSettings is the training-data section: analysis window, detector
// network and the reference time the model's sky projections assume.
type DataSettings struct {
	Window    event.WindowSpec `yaml:"window"`
	Detectors []string         `yaml:"detectors"`
	RefTime   float64          `yaml:"ref_time"`
}

// Load reads model metadata from a YAML file.
func Load(path string) (*ModelMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}
	var md ModelMetadata
	if err := yaml.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}
	return &md, nil
}

// Save writes model metadata to a YAML file, creating parent directories
// as needed.
func (md *ModelMetadata) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	data, err := yaml.Marshal(md)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	return nil
}
