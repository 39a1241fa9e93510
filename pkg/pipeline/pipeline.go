// Package pipeline runs the graph → rendered-artifact pipeline shared
// by the CLI and the preview server. Centralizing it keeps caching and
// format handling consistent across both entry points.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    RootID:  "root",
//	    Formats: []string{pipeline.FormatMarkdown},
//	}
//	result, err := runner.Execute(ctx, g, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	md := result.Artifacts[pipeline.FormatMarkdown]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/notewerk/blocktree/pkg/transform"
)

// Format constants for output formats.
const (
	FormatMarkdown = "md"
	FormatHTML     = "html"
	FormatDOT      = "dot"
	FormatSVG      = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatMarkdown: true,
	FormatHTML:     true,
	FormatDOT:      true,
	FormatSVG:      true,
}

// DefaultMaxLabel is the default label truncation length for graph
// structure output.
const DefaultMaxLabel = 32

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: md, html, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Options contains all configuration for a pipeline run.
type Options struct {
	// RootID is the block the walk starts from.
	RootID string `json:"root_id"`

	// Formats lists the artifacts to produce.
	Formats []string `json:"formats,omitempty"`

	// MaxLabel truncates node labels in dot and svg output.
	MaxLabel int `json:"max_label,omitempty"`

	// Refresh bypasses the cache and recomputes all artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Env    *transform.Env `json:"-"`
	Logger *log.Logger    `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.RootID == "" {
		return fmt.Errorf("root_id is required")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatMarkdown}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.MaxLabel == 0 {
		o.MaxLabel = DefaultMaxLabel
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// GraphHash is the content hash of the input graph.
	GraphHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	BlockCount int
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for a pipeline run.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}
