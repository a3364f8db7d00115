package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyConfig(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "snake.yaml")
	if err := os.WriteFile(file, []byte("grid_width: 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		config  string
		gameID  string
		wantErr bool
	}{
		{"unset", "", "", false},
		{"directory", dir, "", false},
		{"file with play", file, "snake", false},
		{"file without a game", file, "", true},
		{"missing path", filepath.Join(dir, "nope"), "snake", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			flagConfig = tc.config
			t.Cleanup(func() { flagConfig = "" })

			err := applyConfig(tc.gameID)
			if (err != nil) != tc.wantErr {
				t.Errorf("applyConfig(%q) error = %v, wantErr %v", tc.gameID, err, tc.wantErr)
			}
		})
	}
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	flagLogLevel = "loud"
	t.Cleanup(func() { flagLogLevel = "info" })

	if _, err := newLogger(os.Stderr); err == nil {
		t.Error("newLogger accepted an unknown level")
	}
}
