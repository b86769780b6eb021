package candidates

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// FileSource reads candidates from a YAML or JSON document with a top-level
// "candidates" list. The format is picked by file extension.
type FileSource struct {
	path string
}

type fileDocument struct {
	Candidates []*Candidate `json:"candidates" yaml:"candidates"`
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: strings.TrimSpace(path)}
}

func (s *FileSource) Name() string { return SourceFile + ":" + s.path }

func (s *FileSource) Close() error { return nil }

func (s *FileSource) Load(_ context.Context) (*Candidates, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading candidates file %q: %w", s.path, err)
	}

	var doc fileDocument
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".json":
		err = json.Unmarshal(data, &doc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("unsupported candidates file extension %q", filepath.Ext(s.path))
	}
	if err != nil {
		return nil, fmt.Errorf("parsing candidates file %q: %w", s.path, err)
	}

	result := &Candidates{}
	for _, c := range doc.Candidates {
		if c != nil {
			result.Items = append(result.Items, c)
		}
	}
	result.normalize()
	result.SortByName()

	return result, nil
}
