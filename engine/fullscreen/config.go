package fullscreen

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// CopyMode selects how often a pass copies the active color target for fetching effects.
type CopyMode int

const (
	// CopyOnce copies the active color once, before the first draw. Every fetching
	// effect samples the scene as it was when the pass started.
	CopyOnce CopyMode = iota

	// CopyPerEffect copies the active color before every fetching draw, so each fetching
	// effect samples the output of the effects drawn before it.
	CopyPerEffect
)

func (m CopyMode) String() string {
	switch m {
	case CopyPerEffect:
		return "per_effect"
	default:
		return "once"
	}
}

func (m *CopyMode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("copy mode: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "once":
		*m = CopyOnce
	case "per_effect", "per-effect", "pereffect":
		*m = CopyPerEffect
	default:
		return fmt.Errorf("copy mode: unknown value %q on line %d", s, value.Line)
	}
	return nil
}

func (m CopyMode) MarshalYAML() (any, error) {
	return m.String(), nil
}

// Config holds the feature-level settings of full-screen volume passes.
type Config struct {
	// CopyMode selects how the active color is copied for fetching effects.
	CopyMode CopyMode `yaml:"copy_mode"`

	// ForceIntermediateWithPostProcess makes a pass request an intermediate color target
	// whenever the camera runs post-processing, even if no effect fetches color.
	ForceIntermediateWithPostProcess bool `yaml:"force_intermediate_with_post_process"`

	// WarnPassIndex enables the out-of-bounds pass index diagnostic.
	WarnPassIndex bool `yaml:"warn_pass_index"`

	// ScratchTextureName is the debug name of the color copy texture.
	ScratchTextureName string `yaml:"scratch_texture_name"`
}

// DefaultConfig returns the default settings.
//
// Returns:
//   - Config: copy once, force intermediate on, pass index warnings on
func DefaultConfig() Config {
	return Config{
		CopyMode:                         CopyOnce,
		ForceIntermediateWithPostProcess: true,
		WarnPassIndex:                    true,
		ScratchTextureName:               "FullscreenVolume_SourceCopy",
	}
}

// ParseConfig decodes YAML settings on top of DefaultConfig. Keys absent from data keep
// their default value.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Config: the decoded settings
//   - error: any decoding error
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse fullscreen config: %w", err)
	}
	if cfg.ScratchTextureName == "" {
		cfg.ScratchTextureName = DefaultConfig().ScratchTextureName
	}
	return cfg, nil
}

// LoadConfig reads and decodes the YAML settings file at path.
//
// Parameters:
//   - path: the file path
//
// Returns:
//   - Config: the decoded settings
//   - error: any read or decoding error
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("failed to read fullscreen config %s: %w", path, err)
	}
	return ParseConfig(data)
}
