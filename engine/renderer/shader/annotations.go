// annotations.go defines the annotations understood by the effect shader pre-processor.
// Annotations are single-line WGSL comments prefixed with @oxy: that declare custom
// material properties and fixed-function state, so an effect shader file carries
// everything needed to build its pipeline.
package shader

import (
	"fmt"
	"slices"
	"strings"
)

// annotationPrefix is the marker that identifies an annotation within a WGSL comment line.
const annotationPrefix = "@oxy:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
type AnnotationType string

const (
	// AnnotationTypeProperty binds a material property to the next free EffectParams.custom
	// slot and generates an accessor function returning it.
	//
	// Syntax: //@oxy:property <property_name> <accessor_name>
	//
	// Example: //@oxy:property _Tint tint
	// generates: fn tint() -> vec4<f32> { return params.custom[0u]; }
	AnnotationTypeProperty AnnotationType = "property"

	// AnnotationTypeBlend selects the color blend mode of the pipeline.
	//
	// Syntax: //@oxy:blend <off|alpha|additive|multiply>
	AnnotationTypeBlend AnnotationType = "blend"

	// AnnotationTypeDepthTest enables or disables depth testing when a depth-stencil
	// attachment is bound.
	//
	// Syntax: //@oxy:depth_test <on|off>
	AnnotationTypeDepthTest AnnotationType = "depth_test"
)

// Annotation represents a single parsed @oxy: annotation.
type Annotation struct {
	Type AnnotationType

	// Args holds the annotation's arguments:
	//   - property:   [0] = property name, [1] = accessor name
	//   - blend:      [0] = blend mode
	//   - depth_test: [0] = on or off
	Args []AnnotationArg

	// Line is the 1-based source line number.
	Line int

	// Slot is the EffectParams.custom index of a property annotation, assigned during Process.
	Slot int
}

// AnnotationArg is an annotation argument.
type AnnotationArg string

const (
	AnnotationArgOff      AnnotationArg = "off"
	AnnotationArgOn       AnnotationArg = "on"
	AnnotationArgAlpha    AnnotationArg = "alpha"
	AnnotationArgAdditive AnnotationArg = "additive"
	AnnotationArgMultiply AnnotationArg = "multiply"
)

var validBlendModes = []AnnotationArg{
	AnnotationArgOff,
	AnnotationArgAlpha,
	AnnotationArgAdditive,
	AnnotationArgMultiply,
}

// isIdentifier reports whether s is a plain WGSL/shader-property identifier.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// parseAnnotation attempts to parse a single line of WGSL source as an @oxy: annotation.
// Returns nil with no error for lines that do not contain the annotation prefix.
//
// Parameters:
//   - line: the raw WGSL source line to parse
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	comment, ok := strings.CutPrefix(trimmed, "//")
	if !ok {
		return nil, nil
	}
	_, after, ok := strings.Cut(comment, annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty @oxy annotation", lineNum)
	}

	switch AnnotationType(args[0]) {
	case AnnotationTypeProperty:
		if len(args) != 3 {
			return nil, fmt.Errorf("line %d: @oxy property annotation requires a property name and an accessor name", lineNum)
		}
		if !isIdentifier(args[1]) {
			return nil, fmt.Errorf("line %d: invalid property name %q", lineNum, args[1])
		}
		if !isIdentifier(args[2]) {
			return nil, fmt.Errorf("line %d: invalid accessor name %q", lineNum, args[2])
		}
		return &Annotation{
			Type: AnnotationTypeProperty,
			Args: []AnnotationArg{AnnotationArg(args[1]), AnnotationArg(args[2])},
			Line: lineNum,
		}, nil
	case AnnotationTypeBlend:
		if len(args) != 2 || !slices.Contains(validBlendModes, AnnotationArg(args[1])) {
			return nil, fmt.Errorf("line %d: @oxy blend annotation requires one of %v", lineNum, validBlendModes)
		}
		return &Annotation{Type: AnnotationTypeBlend, Args: []AnnotationArg{AnnotationArg(args[1])}, Line: lineNum}, nil
	case AnnotationTypeDepthTest:
		if len(args) != 2 || (args[1] != string(AnnotationArgOn) && args[1] != string(AnnotationArgOff)) {
			return nil, fmt.Errorf("line %d: @oxy depth_test annotation requires on or off", lineNum)
		}
		return &Annotation{Type: AnnotationTypeDepthTest, Args: []AnnotationArg{AnnotationArg(args[1])}, Line: lineNum}, nil
	default:
		return nil, fmt.Errorf("line %d: unknown @oxy annotation type %q", lineNum, args[0])
	}
}
