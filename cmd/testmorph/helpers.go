package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"testmorph/internal/detect"
	"testmorph/internal/history"
)

// loadDocument reads and decodes one JSON file. Parse failures are CLI
// errors; the detector itself only ever sees decoded trees.
func loadDocument(path string) (doc any, sum string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, "", fmt.Errorf("parse %s: %w", path, err)
	}
	h := sha256.Sum256(data)
	return doc, hex.EncodeToString(h[:]), nil
}

// buildDetector assembles the detector from the loaded config.
func buildDetector() (*detect.Detector, error) {
	scorer, err := cfg.BuildScorer()
	if err != nil {
		return nil, err
	}
	registry, err := cfg.BuildRegistry()
	if err != nil {
		return nil, err
	}
	return detect.New(registry, scorer), nil
}

// openHistory opens the configured history store.
func openHistory() (history.Store, error) {
	path := cfg.HistoryDB
	if path == "" {
		path = history.DefaultDBPath
	}
	return history.Open(path)
}
