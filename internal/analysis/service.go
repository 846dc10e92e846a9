package analysis

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tumorx-ai/tumorx/internal/report"
	"github.com/tumorx-ai/tumorx/internal/tumor"
)

// Classifier maps an image file to a tumor label with a confidence
// percentage in [0,100].
type Classifier interface {
	Classify(path string) (tumor.Label, float64, error)
}

// Segmenter produces a heatmap overlay for an image file. An error means no
// overlay is available, never that the analysis has to stop.
type Segmenter interface {
	Segment(path string) (image.Image, error)
}

// Store keeps finished analyses retrievable by ID.
type Store interface {
	Save(a *Analysis) error
	Get(id string) (*Analysis, error)
}

// Service runs the upload pipeline: classify, attempt segmentation, record
// the result. One call handles one upload, synchronously.
type Service struct {
	classifier Classifier
	segmenter  Segmenter
	store      Store
}

func NewService(classifier Classifier, segmenter Segmenter, store Store) *Service {
	return &Service{
		classifier: classifier,
		segmenter:  segmenter,
		store:      store,
	}
}

// Analyze classifies the uploaded image and tries to segment it. A
// classification failure aborts the call; a segmentation failure is logged
// and downgraded to an absent overlay. The overlay, when produced, is
// written next to the upload as <name>_overlay.png.
func (s *Service) Analyze(id, imagePath string) (*Analysis, error) {
	label, confidence, err := s.classifier.Classify(imagePath)
	if err != nil {
		return nil, fmt.Errorf("classification: %w", err)
	}

	a := &Analysis{
		ID:         id,
		ImagePath:  imagePath,
		Label:      label,
		Confidence: confidence,
		CreatedAt:  time.Now(),
	}

	if overlay, err := s.segmenter.Segment(imagePath); err != nil {
		log.Printf("Warning: segmentation unavailable for %s: %v", imagePath, err)
	} else if overlayPath, err := writeOverlay(imagePath, overlay); err != nil {
		log.Printf("Warning: could not save overlay for %s: %v", imagePath, err)
	} else {
		a.OverlayPath = overlayPath
	}

	if err := s.store.Save(a); err != nil {
		return nil, fmt.Errorf("save analysis: %w", err)
	}
	return a, nil
}

// Report builds the PDF for a previously completed analysis.
func (s *Service) Report(id string) (*bytes.Buffer, error) {
	a, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return report.Generate(report.Params{
		OriginalPath: a.ImagePath,
		OverlayPath:  a.OverlayPath,
		Label:        a.Label,
		Confidence:   a.Confidence,
	})
}

// Get returns a stored analysis by ID.
func (s *Service) Get(id string) (*Analysis, error) {
	return s.store.Get(id)
}

func writeOverlay(imagePath string, overlay image.Image) (string, error) {
	base := strings.TrimSuffix(imagePath, filepath.Ext(imagePath))
	overlayPath := base + "_overlay.png"

	f, err := os.Create(overlayPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := png.Encode(f, overlay); err != nil {
		return "", err
	}
	return overlayPath, nil
}
