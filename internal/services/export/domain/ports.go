package domain

import (
	"context"
	"io"
)

// RunnerPort is the public port exposed by the export module
type RunnerPort interface {
	// Run streams r through the normalizer into w as Mailchimp-importable CSV
	Run(ctx context.Context, r io.Reader, w io.Writer, in RunInput) (Summary, error)

	// Preview runs the same pipeline, keeping at most limit output rows
	// while the summary still covers the whole file
	Preview(ctx context.Context, r io.Reader, in RunInput, limit int) (Preview, error)
}
