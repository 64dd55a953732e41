package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"findash/internal/core"
)

// JSONSource reads the dataset from a single JSON document on disk.
type JSONSource struct {
	path string
}

func NewJSONSource(path string) *JSONSource {
	return &JSONSource{path: path}
}

func (s *JSONSource) Load(_ context.Context) (core.AppData, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return core.AppData{}, fmt.Errorf("read dataset file %s: %w", s.path, err)
	}

	var data core.AppData
	if err := json.Unmarshal(raw, &data); err != nil {
		return core.AppData{}, fmt.Errorf("decode dataset file %s: %w", s.path, err)
	}
	if err := data.Validate(); err != nil {
		return core.AppData{}, fmt.Errorf("validate dataset file %s: %w", s.path, err)
	}
	return data, nil
}
