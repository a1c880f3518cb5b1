package fullscreen

import (
	"github.com/Carmen-Shannon/oxy-volume-pass/common"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/volume"
	"go.uber.org/zap"
)

// noneName is the placeholder used in diagnostics for absent references.
const noneName = "<none>"

// Source identifies where an effect instance came from.
type Source struct {
	Volume  volume.Volume
	Profile volume.Profile
}

// VolumeName returns the source volume's name or a placeholder.
func (s Source) VolumeName() string {
	if s.Volume == nil {
		return noneName
	}
	return common.NameOr(s.Volume, noneName)
}

// ProfileName returns the source profile's name or a placeholder.
func (s Source) ProfileName() string {
	if s.Profile == nil {
		return noneName
	}
	return common.NameOr(s.Profile, noneName)
}

// Diagnostics receives the non-fatal problems found while building effect passes.
// Callers rate-limit before reporting; implementations only format and forward.
type Diagnostics interface {
	// PassIndexOutOfBounds reports an effect whose pass index does not exist on its material.
	//
	// Parameters:
	//   - profile: the profile holding the effect
	//   - mat: the effect material
	//   - passIndex: the configured pass index
	PassIndexOutOfBounds(profile volume.Profile, mat material.Material, passIndex int)

	// MaterialConflict reports a material reached from two different volume sources in one frame.
	//
	// Parameters:
	//   - mat: the shared material
	//   - first: the source of the first instance using mat
	//   - current: the source of the conflicting instance
	MaterialConflict(mat material.Material, first, current Source)
}

// logDiagnostics is the zap-backed implementation of Diagnostics.
type logDiagnostics struct {
	logger *zap.Logger
}

var _ Diagnostics = &logDiagnostics{}

// NewLogDiagnostics creates Diagnostics that log through logger.
// A nil logger discards everything.
//
// Parameters:
//   - logger: the destination logger
//
// Returns:
//   - Diagnostics: the new diagnostics sink
func NewLogDiagnostics(logger *zap.Logger) Diagnostics {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &logDiagnostics{logger: logger.Named("fullscreen")}
}

func (d *logDiagnostics) PassIndexOutOfBounds(profile volume.Profile, mat material.Material, passIndex int) {
	d.logger.Warn("pass index out of bounds",
		zap.String("profile", Source{Profile: profile}.ProfileName()),
		zap.String("material", common.NameOr(mat, noneName)),
		zap.Int("pass_index", passIndex),
		zap.Int("pass_count", mat.PassCount()),
	)
}

func (d *logDiagnostics) MaterialConflict(mat material.Material, first, current Source) {
	d.logger.Error("shared material across different volume sources; effects will share material state",
		zap.String("material", common.NameOr(mat, noneName)),
		zap.String("first_volume", first.VolumeName()),
		zap.String("first_profile", first.ProfileName()),
		zap.String("current_volume", current.VolumeName()),
		zap.String("current_profile", current.ProfileName()),
	)
}
