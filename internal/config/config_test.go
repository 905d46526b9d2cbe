package config

import (
	"path/filepath"
	"testing"

	"gwprep/internal/event"
)

func testMetadata() *ModelMetadata {
	return &ModelMetadata{
		DatasetSettings: DatasetSettings{
			Domain: DomainSpec{
				Type:         "FrequencyDomain",
				FMin:         20,
				FMax:         1024,
				DeltaF:       0.25,
				WindowFactor: 1.0,
			},
		},
		TrainSettings: TrainSettings{
			Data: DataSettings{
				Window:    event.WindowSpec{Type: "tukey", Duration: 4, SampleRate: 4096, RollOff: 0.4},
				Detectors: []string{"H1", "L1"},
				RefTime:   1126259462.391,
			},
		},
	}
}

func TestMetadata_SaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "model.yaml")

	md := testMetadata()
	if err := md.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.DatasetSettings.Domain.Type != "FrequencyDomain" {
		t.Errorf("expected FrequencyDomain, got %s", loaded.DatasetSettings.Domain.Type)
	}
	if loaded.DatasetSettings.Domain.DeltaF != 0.25 {
		t.Errorf("expected delta_f 0.25, got %v", loaded.DatasetSettings.Domain.DeltaF)
	}
	if len(loaded.TrainSettings.Data.Detectors) != 2 {
		t.Fatalf("expected 2 detectors, got %d", len(loaded.TrainSettings.Data.Detectors))
	}
	if loaded.TrainSettings.Data.Window.SampleRate != 4096 {
		t.Errorf("expected f_s 4096, got %v", loaded.TrainSettings.Data.Window.SampleRate)
	}
	if loaded.TrainSettings.Data.RefTime != 1126259462.391 {
		t.Errorf("expected ref_time 1126259462.391, got %v", loaded.TrainSettings.Data.RefTime)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
