package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Item outcomes
const (
	StatusUploaded = "uploaded"
	StatusSkipped  = "skipped"
	StatusFailed   = "failed"
	StatusDryRun   = "dry-run"
	StatusWritten  = "written"
)

// Item is the outcome of one file or photo
type Item struct {
	Name       string `yaml:"name"`
	Identifier string `yaml:"identifier,omitempty"`
	Status     string `yaml:"status"`
	PhotoID    string `yaml:"photoid,omitempty"`
	Title      string `yaml:"title,omitempty"`
	Tags       string `yaml:"tags,omitempty"`
	Reason     string `yaml:"reason,omitempty"`
}

// Run summarises one upload or download run
type Run struct {
	Command  string `yaml:"command"`
	User     string `yaml:"user,omitempty"`
	Started  string `yaml:"started"`
	Finished string `yaml:"finished"`
	Total    int    `yaml:"total"`
	Uploaded int    `yaml:"uploaded,omitempty"`
	Written  int    `yaml:"written,omitempty"`
	Skipped  int    `yaml:"skipped"`
	Failed   int    `yaml:"failed"`
	Items    []Item `yaml:"items"`
}

// NewRun starts a run summary for command
func NewRun(command string) *Run {
	return &Run{
		Command: command,
		Started: time.Now().Format(time.RFC3339),
		Items:   []Item{},
	}
}

// Add records an item outcome and updates the counters
func (r *Run) Add(item Item) {
	switch item.Status {
	case StatusUploaded:
		r.Uploaded++
	case StatusWritten:
		r.Written++
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	}
	r.Items = append(r.Items, item)
}

// Finish stamps the end time
func (r *Run) Finish() {
	r.Finished = time.Now().Format(time.RFC3339)
}

// Save writes the run summary as YAML
func Save(path string, run *Run) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	data, err := yaml.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write YAML file: %w", err)
	}

	return nil
}
