// Package classify turns an uploaded MRI image into a tumor label with a
// confidence percentage by running it through a pretrained classification
// model.
package classify

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/nfnt/resize"

	"github.com/tumorx-ai/tumorx/internal/tumor"
)

var (
	// ErrUnreadableImage marks an upload that could not be opened or decoded.
	ErrUnreadableImage = errors.New("image unreadable")
	// ErrShapeMismatch marks a tensor that does not fit the model's declared
	// input or output shape.
	ErrShapeMismatch = errors.New("tensor shape mismatch")
)

// Predictor is the forward-pass surface the classifier needs from a loaded
// model. *model.Session satisfies it.
type Predictor interface {
	Predict(input []float32) ([]float32, error)
	InputShape() []int64
}

// Preprocess selects how raw pixel values are mapped before inference.
type Preprocess int

const (
	// PreprocessNone feeds raw 0-255 pixel values to the model.
	PreprocessNone Preprocess = iota
	// PreprocessRescale01 scales pixel values into [0,1].
	PreprocessRescale01
	// PreprocessCenter maps pixel values into [-1,1], the convention used by
	// several pretrained backbones.
	PreprocessCenter
)

// ParsePreprocess maps a config string to a Preprocess policy.
func ParsePreprocess(s string) (Preprocess, error) {
	switch s {
	case "", "none":
		return PreprocessNone, nil
	case "rescale01":
		return PreprocessRescale01, nil
	case "center":
		return PreprocessCenter, nil
	}
	return 0, fmt.Errorf("preprocess must be none, rescale01 or center, got %q", s)
}

// Model binds a loaded predictor to the label set and preprocessing policy,
// giving the service layer a single Classify call.
type Model struct {
	predictor Predictor
	labels    []tumor.Label
	policy    Preprocess
}

func NewModel(p Predictor, labels []tumor.Label, policy Preprocess) *Model {
	return &Model{predictor: p, labels: labels, policy: policy}
}

// Classify runs one forward pass on the image at path and returns the
// arg-max label with its confidence as a percentage in [0,100].
func (m *Model) Classify(path string) (tumor.Label, float64, error) {
	return Classify(m.predictor, path, m.labels, m.policy)
}

// Classify is the function form of Model.Classify.
func Classify(p Predictor, path string, labels []tumor.Label, policy Preprocess) (tumor.Label, float64, error) {
	height, width, channels, err := inputHWC(p.InputShape())
	if err != nil {
		return 0, 0, err
	}

	img, err := decodeImage(path)
	if err != nil {
		return 0, 0, err
	}

	input := imageToTensor(img, width, height, channels, policy)

	probs, err := p.Predict(input)
	if err != nil {
		return 0, 0, err
	}
	if len(probs) < len(labels) {
		return 0, 0, fmt.Errorf("%w: model emitted %d values for %d labels",
			ErrShapeMismatch, len(probs), len(labels))
	}

	best := 0
	for i := 1; i < len(labels); i++ {
		if probs[i] > probs[best] {
			best = i
		}
	}

	confidence := float64(probs[best]) * 100.0
	if confidence < 0 {
		confidence = 0
	} else if confidence > 100 {
		confidence = 100
	}
	return labels[best], confidence, nil
}

// inputHWC extracts height, width and channel count from an NHWC input
// shape like [1 224 224 3].
func inputHWC(shape []int64) (h, w, c int, err error) {
	if len(shape) != 4 {
		return 0, 0, 0, fmt.Errorf("%w: expected NHWC input shape, got %v", ErrShapeMismatch, shape)
	}
	return int(shape[1]), int(shape[2]), int(shape[3]), nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}
	return img, nil
}

// imageToTensor resizes the image to the model's input size and lays the
// pixels out as an HWC float32 tensor under the chosen preprocessing policy.
func imageToTensor(img image.Image, width, height, channels int, policy Preprocess) []float32 {
	resized := resize.Resize(uint(width), uint(height), img, resize.Lanczos3)

	out := make([]float32, height*width*channels)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()
			px := []float32{
				float32(r >> 8),
				float32(g >> 8),
				float32(b >> 8),
			}
			base := (y*width + x) * channels
			if channels == 1 {
				// Grayscale model: ITU-R 601 luma from the RGB pixel.
				out[base] = applyPolicy(0.299*px[0]+0.587*px[1]+0.114*px[2], policy)
				continue
			}
			for ch := 0; ch < channels && ch < 3; ch++ {
				out[base+ch] = applyPolicy(px[ch], policy)
			}
		}
	}
	return out
}

func applyPolicy(v float32, policy Preprocess) float32 {
	switch policy {
	case PreprocessRescale01:
		return v / 255.0
	case PreprocessCenter:
		return v/127.5 - 1.0
	default:
		return v
	}
}
