// Package config loads named parameter profiles for the KCS modem from
// YAML, following the load/validate pattern used for the retrieval
// pack's decoder and server configuration (config.go's LoadConfig,
// decoder_config.go's DecoderConfig.Validate).
package config

import (
	"fmt"
	"os"

	"github.com/jsh6789/kcsmodem/internal/params"
	"gopkg.in/yaml.v3"
)

// Profile is the YAML-serialisable form of params.Params. Zero values
// are replaced with the standard profile's defaults on Load.
type Profile struct {
	Framerate   int     `yaml:"framerate"`
	MarkFreq    int     `yaml:"mark_freq"`
	SpaceFreq   int     `yaml:"space_freq"`
	MarkCycles  int     `yaml:"mark_cycles"`
	SpaceCycles int     `yaml:"space_cycles"`
	Amplitude   float64 `yaml:"amplitude"`
	Squelch     float64 `yaml:"squelch"`
	LeaderSecs  float64 `yaml:"leader_secs"`
	TrailerSecs float64 `yaml:"trailer_secs"`
	NullCycles  int     `yaml:"null_cycles"`
	Waveform    string  `yaml:"waveform"`
}

// FromParams captures p as a serialisable Profile.
func FromParams(p params.Params) Profile {
	return Profile{
		Framerate:   p.Framerate,
		MarkFreq:    p.MarkFreq,
		SpaceFreq:   p.SpaceFreq,
		MarkCycles:  p.MarkCycles,
		SpaceCycles: p.SpaceCycles,
		Amplitude:   p.Amplitude,
		Squelch:     p.Squelch,
		LeaderSecs:  p.LeaderSecs,
		TrailerSecs: p.TrailerSecs,
		NullCycles:  p.NullCycles,
		Waveform:    p.Waveform.String(),
	}
}

// Params resolves the profile against the standard profile's defaults
// for any field left at its YAML zero value, then clips amplitude and
// squelch into [0, 1].
func (pr Profile) Params() params.Params {
	p := params.Standard()

	if pr.Framerate != 0 {
		p.Framerate = pr.Framerate
	}
	if pr.MarkFreq != 0 {
		p.MarkFreq = pr.MarkFreq
	}
	if pr.SpaceFreq != 0 {
		p.SpaceFreq = pr.SpaceFreq
	}
	if pr.MarkCycles != 0 {
		p.MarkCycles = pr.MarkCycles
	}
	if pr.SpaceCycles != 0 {
		p.SpaceCycles = pr.SpaceCycles
	}
	if pr.Amplitude != 0 {
		p.Amplitude = pr.Amplitude
	}
	if pr.Squelch != 0 {
		p.Squelch = pr.Squelch
	}
	if pr.LeaderSecs != 0 {
		p.LeaderSecs = pr.LeaderSecs
	}
	if pr.TrailerSecs != 0 {
		p.TrailerSecs = pr.TrailerSecs
	}
	if pr.NullCycles != 0 {
		p.NullCycles = pr.NullCycles
	}
	if pr.Waveform != "" {
		p.Waveform = params.ParseWaveform(pr.Waveform)
	}

	return p.Clipped()
}

// Load reads and parses a YAML profile file into Params.
func Load(filename string) (params.Params, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return params.Params{}, fmt.Errorf("config: read %s: %w", filename, err)
	}

	var pr Profile
	if err := yaml.Unmarshal(data, &pr); err != nil {
		return params.Params{}, fmt.Errorf("config: parse %s: %w", filename, err)
	}

	return pr.Params(), nil
}

// Save writes p to filename as a YAML profile.
func Save(filename string, p params.Params) error {
	data, err := yaml.Marshal(FromParams(p))
	if err != nil {
		return fmt.Errorf("config: marshal profile: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", filename, err)
	}
	return nil
}
