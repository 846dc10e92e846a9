// Package analysis orchestrates the per-upload pipeline: classification,
// best-effort segmentation, and report generation over the stored result.
package analysis

import (
	"time"

	"github.com/tumorx-ai/tumorx/internal/tumor"
)

// Analysis is the outcome of one uploaded scan. OverlayPath is empty when
// segmentation produced no overlay.
type Analysis struct {
	ID          string
	ImagePath   string
	OverlayPath string
	Label       tumor.Label
	Confidence  float64
	CreatedAt   time.Time
}

// HasOverlay reports whether segmentation produced an overlay image.
func (a *Analysis) HasOverlay() bool {
	return a.OverlayPath != ""
}
