package service

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AreaProfiles holds named neighborhood context blurbs fed into the
// generation prompt. The profile text is opaque to the synthesizer: it is
// configuration, not logic.
type AreaProfiles struct {
	Default string            `yaml:"default"`
	Areas   map[string]string `yaml:"areas"`
}

// LoadAreaProfiles reads the profiles file. A missing file is not an error;
// it yields empty profiles so deployments without area context still work.
func LoadAreaProfiles(path string) (*AreaProfiles, error) {
	if path == "" {
		return &AreaProfiles{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &AreaProfiles{}, nil
		}
		return nil, fmt.Errorf("read area profiles: %w", err)
	}

	var profiles AreaProfiles
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("parse area profiles: %w", err)
	}

	return &profiles, nil
}

// Notes returns the context notes for an area name, falling back to the
// default profile when the area is unknown or empty.
func (p *AreaProfiles) Notes(area string) string {
	if area != "" {
		if notes, ok := p.Areas[strings.ToLower(strings.TrimSpace(area))]; ok {
			return notes
		}
	}
	return p.Default
}
