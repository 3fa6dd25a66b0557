package plan

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Decode reads a plan from JSON.
func Decode(r io.Reader) (*Plan, error) {
	var p Plan
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	return &p, nil
}

// Marshal serializes a plan to indented JSON.
func Marshal(p *Plan) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// ReadFile loads a plan from a JSON file.
func ReadFile(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// WriteFile writes a plan to a JSON file.
func WriteFile(p *Plan, path string) error {
	data, err := Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
