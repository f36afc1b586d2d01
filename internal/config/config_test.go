package config

import (
	"strings"
	"testing"

	"testmorph/internal/formats"
)

func TestLoadYAML(t *testing.T) {
	data := []byte(`
logging:
  level: debug
  format: json
history_db: /tmp/h.db
priors:
  zephyr: 0.4
  generic: 0.1
calibration:
  ratio_cap: 4.0
  density_floor: 0.2
  max_density: 64
  uniqueness_amp: 2.0
  default_prior: 0.2
  strong_evidence: 0.8
  high_confidence_floor: 0.7
  suppression_factor: 0.7
  ambiguity_ceiling: 1.8
`)
	c, err := Load(data, ".yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Logging.Level != "debug" || c.Logging.Format != "json" {
		t.Errorf("logging = %+v", c.Logging)
	}
	if c.HistoryDB != "/tmp/h.db" {
		t.Errorf("history_db = %q", c.HistoryDB)
	}
	if c.Calibration == nil || c.Calibration.RatioCap != 4.0 {
		t.Errorf("calibration = %+v", c.Calibration)
	}

	s, err := c.BuildScorer()
	if err != nil {
		t.Fatalf("BuildScorer: %v", err)
	}
	if got := s.Prior(formats.Zephyr); got != 0.4 {
		t.Errorf("Prior(zephyr) = %v, want 0.4", got)
	}
	if got := s.Prior(formats.TestRail); got != 0.2 {
		t.Errorf("Prior(testrail) = %v, want default 0.2", got)
	}
}

func TestLoadJSONByContent(t *testing.T) {
	c, err := Load([]byte(`{"logging": {"level": "warn"}}`), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Logging.Level != "warn" {
		t.Errorf("level = %q, want warn", c.Logging.Level)
	}
	// Untouched fields keep their defaults.
	if c.HistoryDB == "" {
		t.Error("history_db default lost on merge")
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	if _, err := Load([]byte(`{not json`), ".json"); err == nil {
		t.Error("Load accepted malformed json")
	}
	if _, err := Load([]byte("\t- ]["), ".yaml"); err == nil {
		t.Error("Load accepted malformed yaml")
	}
}

func TestBuildScorerRejectsBadPriors(t *testing.T) {
	c := Default()
	c.Priors = map[string]float64{"zephyr": 2.0}
	if _, err := c.BuildScorer(); err == nil {
		t.Error("BuildScorer accepted prior outside (0,1)")
	}
	if err := func() error { _, err := c.BuildScorer(); return err }(); err != nil && !strings.Contains(err.Error(), "prior") {
		t.Errorf("error %q does not mention prior", err)
	}
}

func TestBuildRegistryAppliesWeightOverrides(t *testing.T) {
	c := Default()
	c.Weights = map[string]map[string]float64{
		"zephyr": {"project": 2.5},
	}
	reg, err := c.BuildRegistry()
	if err != nil {
		t.Fatalf("BuildRegistry: %v", err)
	}
	found := false
	for _, rule := range reg.Rules(formats.Zephyr) {
		if rule.Path == "project" {
			found = true
			if rule.Weight != 2.5 {
				t.Errorf("project weight = %v, want 2.5", rule.Weight)
			}
		}
	}
	if !found {
		t.Fatal("project rule missing after override")
	}
}

func TestBuildRegistryRejectsUnknownTargets(t *testing.T) {
	c := Default()
	c.Weights = map[string]map[string]float64{"nope": {"x": 1}}
	if _, err := c.BuildRegistry(); err == nil {
		t.Error("BuildRegistry accepted unknown format")
	}
	c.Weights = map[string]map[string]float64{"zephyr": {"nope": 1}}
	if _, err := c.BuildRegistry(); err == nil {
		t.Error("BuildRegistry accepted unknown rule path")
	}
	// A non-positive override trips registry validation.
	c.Weights = map[string]map[string]float64{"zephyr": {"project": 0}}
	if _, err := c.BuildRegistry(); err == nil {
		t.Error("BuildRegistry accepted zero weight")
	}
}

func TestDefaultBuildsValidScorer(t *testing.T) {
	c := Default()
	if _, err := c.BuildScorer(); err != nil {
		t.Fatalf("BuildScorer on defaults: %v", err)
	}
}
