package machine

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type profileFile struct {
	Name     string   `yaml:"name"`
	Variant  string   `yaml:"variant"`
	Feedrate float64  `yaml:"feedrate"`
	Skim     *float64 `yaml:"skim"`
	Keepdown *float64 `yaml:"keepdown"`
	Limits   struct {
		X float64 `yaml:"x"`
		Y float64 `yaml:"y"`
	} `yaml:"limits"`
	Templates map[string]string `yaml:"templates"`
}

// LoadProfileFile reads a YAML profile from disk.
func LoadProfileFile(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadProfile(f)
}

// LoadProfile reads a YAML profile. Templates that are not listed keep
// their defaults.
func LoadProfile(r io.Reader) (*Profile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var pf profileFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}

	p := NewProfile(pf.Name)
	if pf.Variant != "" {
		p.SetVariant(pf.Variant)
	}
	if pf.Feedrate != 0 {
		if err := p.SetFeedrate(pf.Feedrate); err != nil {
			return nil, err
		}
	}
	if pf.Skim != nil {
		p.SetSkim(*pf.Skim)
	}
	if pf.Keepdown != nil {
		if err := p.SetKeepdown(*pf.Keepdown); err != nil {
			return nil, err
		}
	}
	if err := p.SetLimits(pf.Limits.X, pf.Limits.Y); err != nil {
		return nil, err
	}
	for name, text := range pf.Templates {
		t, err := ParseTemplate(name)
		if err != nil {
			return nil, err
		}
		if err := p.SetTemplateText(t, text); err != nil {
			return nil, err
		}
	}

	return p, nil
}
