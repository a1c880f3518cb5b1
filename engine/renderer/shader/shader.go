package shader

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/pipeline"
)

// NewPipeline pre-processes an annotated WGSL fragment source and creates the full-screen
// pipeline it describes. Options given by the caller are applied after the ones derived from
// annotations, so they take precedence.
//
// Parameters:
//   - key: the pipeline key materials reference
//   - source: the annotated WGSL source declaring fs_main
//   - opts: additional pipeline options
//
// Returns:
//   - pipeline.Pipeline: the pipeline
//   - error: an error if an annotation is invalid
func NewPipeline(key, source string, opts ...pipeline.PipelineBuilderOption) (pipeline.Pipeline, error) {
	pp := NewPreProcessor()
	processed, err := pp.Process(source)
	if err != nil {
		return nil, fmt.Errorf("shader %q: %w", key, err)
	}
	return pipeline.NewPipeline(key, processed, append(pp.PipelineOptions(), opts...)...), nil
}

// LoadPipeline reads an annotated WGSL file and creates its pipeline with NewPipeline.
//
// Parameters:
//   - key: the pipeline key materials reference
//   - path: the WGSL file path
//   - opts: additional pipeline options
//
// Returns:
//   - pipeline.Pipeline: the pipeline
//   - error: an error if the file cannot be read or an annotation is invalid
func LoadPipeline(key, path string, opts ...pipeline.PipelineBuilderOption) (pipeline.Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read shader file %s: %w", path, err)
	}
	return NewPipeline(key, string(data), opts...)
}
