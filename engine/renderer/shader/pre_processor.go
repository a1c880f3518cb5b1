// pre_processor.go implements the effect shader pre-processor. It scans WGSL source for
// @oxy: annotations, replaces property annotations with generated accessor functions, and
// turns the collected annotations into pipeline options.
package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// declarations accumulates every annotation found during a Process call.
	declarations []Annotation
}

// PreProcessor processes WGSL effect source containing @oxy: annotations.
type PreProcessor interface {
	// Process replaces @oxy: annotations in source with their WGSL output.
	// Property annotations become accessor functions, state annotations are removed.
	// The declarations list is reset at the start of each call.
	//
	// Parameters:
	//   - source: the raw WGSL fragment source
	//
	// Returns:
	//   - string: the processed source
	//   - error: an error if an annotation is malformed, a property is declared twice,
	//     or more properties are declared than EffectParams has slots
	Process(source string) (string, error)

	// Declarations returns the annotations collected by the most recent Process call, in source order.
	Declarations() []Annotation

	// PipelineOptions converts the collected declarations into pipeline options.
	PipelineOptions() []pipeline.PipelineBuilderOption
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a new PreProcessor.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	return &preProcessor{}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	seen := make(map[AnnotationArg]int)
	slot := 0

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case AnnotationTypeProperty:
			name, accessor := a.Args[0], a.Args[1]
			if first, ok := seen[name]; ok {
				return "", fmt.Errorf("line %d: property %q already declared on line %d", a.Line, name, first)
			}
			if slot >= pipeline.MaxCustomProperties {
				return "", fmt.Errorf("line %d: property %q exceeds the %d custom property slots", a.Line, name, pipeline.MaxCustomProperties)
			}
			seen[name] = a.Line
			a.Slot = slot
			slot++
			out = append(out, fmt.Sprintf("fn %s() -> vec4<f32> { return params.custom[%du]; }", accessor, a.Slot))
		case AnnotationTypeBlend, AnnotationTypeDepthTest:
			// State only; nothing is emitted.
		}
		p.declarations = append(p.declarations, *a)
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}

func (p *preProcessor) PipelineOptions() []pipeline.PipelineBuilderOption {
	var (
		opts       []pipeline.PipelineBuilderOption
		properties []string
	)
	for _, a := range p.declarations {
		switch a.Type {
		case AnnotationTypeProperty:
			properties = append(properties, string(a.Args[0]))
		case AnnotationTypeBlend:
			if state := blendState(a.Args[0]); state != nil {
				opts = append(opts, pipeline.WithBlendState(state))
			} else {
				opts = append(opts, pipeline.WithBlendEnabled(false))
			}
		case AnnotationTypeDepthTest:
			opts = append(opts, pipeline.WithDepthTestEnabled(a.Args[0] == AnnotationArgOn))
		}
	}
	if len(properties) > 0 {
		opts = append(opts, pipeline.WithProperties(properties...))
	}
	return opts
}

// blendState returns the blend state for a blend mode, nil for off.
func blendState(mode AnnotationArg) *wgpu.BlendState {
	component := func(src, dst wgpu.BlendFactor) wgpu.BlendComponent {
		return wgpu.BlendComponent{SrcFactor: src, DstFactor: dst, Operation: wgpu.BlendOperationAdd}
	}
	switch mode {
	case AnnotationArgAlpha:
		return &wgpu.BlendState{
			Color: component(wgpu.BlendFactorSrcAlpha, wgpu.BlendFactorOneMinusSrcAlpha),
			Alpha: component(wgpu.BlendFactorOne, wgpu.BlendFactorOneMinusSrcAlpha),
		}
	case AnnotationArgAdditive:
		return &wgpu.BlendState{
			Color: component(wgpu.BlendFactorSrcAlpha, wgpu.BlendFactorOne),
			Alpha: component(wgpu.BlendFactorZero, wgpu.BlendFactorOne),
		}
	case AnnotationArgMultiply:
		return &wgpu.BlendState{
			Color: component(wgpu.BlendFactorDst, wgpu.BlendFactorZero),
			Alpha: component(wgpu.BlendFactorZero, wgpu.BlendFactorOne),
		}
	default:
		return nil
	}
}
