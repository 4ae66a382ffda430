package config

import (
	"encoding/json"
	"os"
	"testing"
)

func TestValidateAndAddDefaults(t *testing.T) {
	// Year is the only hard requirement.
	cnf := Configuration{
		ProjectName: "",
		Year:        0,
	}

	err := cnf.validateAndAddDefaults()
	if err == nil || err.Error() != "year is required" {
		t.Errorf("Expected year required error, got %v", err)
	}

	cnf = Configuration{
		ProjectName: "",
		Year:        2024,
	}
	err = cnf.validateAndAddDefaults()
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if cnf.ProjectName != "Handover" {
		t.Errorf("Expected default project name, got %q", cnf.ProjectName)
	}
	if cnf.Matching.Workers != DEFAULT_WORKERS {
		t.Errorf("Expected default worker count %d, got %d", DEFAULT_WORKERS, cnf.Matching.Workers)
	}
	if cnf.Matching.TopCounterparties != DEFAULT_TOP_N {
		t.Errorf("Expected default top-N %d, got %d", DEFAULT_TOP_N, cnf.Matching.TopCounterparties)
	}
	if cnf.OutputDir != "./output" {
		t.Errorf("Expected default output dir, got %q", cnf.OutputDir)
	}

	// An empty datasource DNS is allowed: the run stays in-memory.
	cnf = Configuration{
		ProjectName: "Test Project",
		Year:        2024,
		DataSource:  DataSourceConfig{Dns: ""},
	}
	err = cnf.validateAndAddDefaults()
	if err != nil {
		t.Errorf("Expected no error for empty DNS, got %v", err)
	}
}

func TestInitConfigFromFile(t *testing.T) {
	cnf := Configuration{
		ProjectName: "handover-test",
		CompanyName: "example",
		Year:        2024,
		Matching:    MatchingConfig{Workers: 4, TopCounterparties: 5},
	}
	content, err := json.Marshal(cnf)
	if err != nil {
		t.Fatal(err)
	}

	f, err := os.CreateTemp(t.TempDir(), "handover*.json")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	if err := InitConfig(f.Name()); err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	loaded, err := Fetch()
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if loaded.CompanyName != "example" {
		t.Errorf("Expected company name example, got %q", loaded.CompanyName)
	}
	if loaded.Matching.Workers != 4 {
		t.Errorf("Expected 4 workers, got %d", loaded.Matching.Workers)
	}
}
