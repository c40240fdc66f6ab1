package selector

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var defaultTablesYAML []byte

// TablesVersion is the only table layout this package understands.
const TablesVersion = 1

// Tables lists known format tags per pool, most preferred first. A zero
// Version is read as TablesVersion.
type Tables struct {
	Version       int   `yaml:"version"`
	Muxed         []int `yaml:"muxed"`
	AdaptiveVideo []int `yaml:"adaptive_video"`
	AdaptiveAudio []int `yaml:"adaptive_audio"`
}

// DefaultTables returns the embedded tables. A broken embedded file is a
// programming error and panics.
func DefaultTables() Tables {
	t, err := LoadTables(bytes.NewReader(defaultTablesYAML))
	if err != nil {
		panic(fmt.Sprintf("selector: embedded tables.yaml: %v", err))
	}
	return t
}

// LoadTables decodes and validates tables from YAML. Unknown keys are
// rejected.
func LoadTables(r io.Reader) (Tables, error) {
	var t Tables
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			return Tables{}, errors.New("preference tables: empty document")
		}
		return Tables{}, fmt.Errorf("preference tables: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return Tables{}, errors.New("preference tables: multiple documents or trailing content")
	}
	if err := t.Validate(); err != nil {
		return Tables{}, err
	}
	if t.Version == 0 {
		t.Version = TablesVersion
	}
	return t, nil
}

// LoadTablesFile reads tables from path.
func LoadTablesFile(path string) (Tables, error) {
	// #nosec G304 -- table path is provided by the operator
	f, err := os.Open(path)
	if err != nil {
		return Tables{}, fmt.Errorf("open preference tables: %w", err)
	}
	defer f.Close()
	return LoadTables(f)
}

// Validate rejects an unknown version, empty lists, non-positive tags and
// duplicates within a list.
func (t Tables) Validate() error {
	if t.Version != 0 && t.Version != TablesVersion {
		return fmt.Errorf("preference tables: unsupported version %d", t.Version)
	}
	lists := []struct {
		name string
		tags []int
	}{
		{"muxed", t.Muxed},
		{"adaptive_video", t.AdaptiveVideo},
		{"adaptive_audio", t.AdaptiveAudio},
	}
	for _, l := range lists {
		if len(l.tags) == 0 {
			return fmt.Errorf("preference tables: %s is empty", l.name)
		}
		seen := make(map[int]struct{}, len(l.tags))
		for _, tag := range l.tags {
			if tag <= 0 {
				return fmt.Errorf("preference tables: %s has invalid tag %d", l.name, tag)
			}
			if _, dup := seen[tag]; dup {
				return fmt.Errorf("preference tables: %s has duplicate tag %d", l.name, tag)
			}
			seen[tag] = struct{}{}
		}
	}
	return nil
}
