// Package segment produces a tumor-probability heatmap overlay for an MRI
// image using a pretrained segmentation model. A failure here is never fatal
// to the analysis pipeline; callers downgrade it to "no overlay".
package segment

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// ErrUnreadableImage marks a source image that could not be opened or
// decoded.
var ErrUnreadableImage = errors.New("image unreadable")

// Predictor is the forward-pass surface the segmenter needs from a loaded
// model. *model.Session satisfies it.
type Predictor interface {
	Predict(input []float32) ([]float32, error)
}

// Options control the tensor size fed to the model and the heatmap blend.
type Options struct {
	// TargetSize is the square edge length of the model input tensor.
	TargetSize int
	// Alpha is the heatmap blend weight in [0,1]; 0 keeps the original
	// image, 1 shows only the heatmap.
	Alpha float64
}

// DefaultOptions matches the segmentation model this service ships with.
func DefaultOptions() Options {
	return Options{TargetSize: 128, Alpha: 0.5}
}

// Model binds a loaded predictor and options behind a single Segment call
// for the service layer.
type Model struct {
	predictor Predictor
	opts      Options
}

func NewModel(p Predictor, opts Options) *Model {
	return &Model{predictor: p, opts: opts}
}

func (m *Model) Segment(path string) (image.Image, error) {
	return Segment(m.predictor, path, m.opts)
}

// Segment loads the image at path in grayscale, runs the segmentation model
// on a TargetSize x TargetSize normalized tensor, resizes the resulting
// probability map back to the original resolution and alpha-composites a
// jet-colored heatmap over the grayscale original.
func Segment(p Predictor, path string, opts Options) (image.Image, error) {
	if opts.TargetSize <= 0 {
		opts.TargetSize = 128
	}
	if opts.Alpha < 0 {
		opts.Alpha = 0
	} else if opts.Alpha > 1 {
		opts.Alpha = 1
	}

	gray, err := loadGrayscale(path)
	if err != nil {
		return nil, err
	}
	bounds := gray.Bounds()
	origW, origH := bounds.Dx(), bounds.Dy()

	input := grayToTensor(gray, opts.TargetSize)

	output, err := p.Predict(input)
	if err != nil {
		return nil, fmt.Errorf("segmentation inference: %w", err)
	}
	want := opts.TargetSize * opts.TargetSize
	if len(output) != want {
		return nil, fmt.Errorf("segmentation output has %d values, want %d", len(output), want)
	}

	// Map the probability map back onto the original resolution with the
	// same bilinear interpolation used to build the input tensor, so the
	// heatmap stays aligned with the source pixels.
	probs := resizeBilinear(output, opts.TargetSize, opts.TargetSize, origW, origH)

	return composite(gray, probs, opts.Alpha), nil
}

// loadGrayscale decodes the image at path and collapses it to a single
// luminance channel.
func loadGrayscale(path string) (*image.Gray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}

	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x-bounds.Min.X, y-bounds.Min.Y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return gray, nil
}

// grayToTensor resizes the grayscale image to size x size with bilinear
// interpolation and normalizes pixel values into [0,1].
func grayToTensor(gray *image.Gray, size int) []float32 {
	bounds := gray.Bounds()
	src := make([]float32, bounds.Dx()*bounds.Dy())
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			src[y*bounds.Dx()+x] = float32(gray.GrayAt(x, y).Y)
		}
	}

	resized := resizeBilinear(src, bounds.Dx(), bounds.Dy(), size, size)
	for i := range resized {
		resized[i] /= 255.0
	}
	return resized
}

// resizeBilinear resamples a row-major float grid from srcW x srcH to
// dstW x dstH.
func resizeBilinear(src []float32, srcW, srcH, dstW, dstH int) []float32 {
	dst := make([]float32, dstW*dstH)
	if srcW == dstW && srcH == dstH {
		copy(dst, src)
		return dst
	}

	xRatio := float64(srcW-1) / float64(max(dstW-1, 1))
	yRatio := float64(srcH-1) / float64(max(dstH-1, 1))

	for y := 0; y < dstH; y++ {
		sy := float64(y) * yRatio
		y0 := int(sy)
		y1 := min(y0+1, srcH-1)
		fy := sy - float64(y0)

		for x := 0; x < dstW; x++ {
			sx := float64(x) * xRatio
			x0 := int(sx)
			x1 := min(x0+1, srcW-1)
			fx := sx - float64(x0)

			top := float64(src[y0*srcW+x0])*(1-fx) + float64(src[y0*srcW+x1])*fx
			bottom := float64(src[y1*srcW+x0])*(1-fx) + float64(src[y1*srcW+x1])*fx
			dst[y*dstW+x] = float32(top*(1-fy) + bottom*fy)
		}
	}
	return dst
}

// composite blends the jet-colored probability map over a 3-channel copy of
// the grayscale original: out = original*(1-alpha) + heatmap*alpha.
func composite(gray *image.Gray, probs []float32, alpha float64) *image.RGBA {
	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g := float64(gray.GrayAt(x, y).Y)
			heat := jetColor(scaleProb(probs[y*w+x]))

			out.SetRGBA(x, y, color.RGBA{
				R: blend(g, float64(heat.R), alpha),
				G: blend(g, float64(heat.G), alpha),
				B: blend(g, float64(heat.B), alpha),
				A: 255,
			})
		}
	}
	return out
}

// scaleProb maps a probability to the 0-255 colormap domain, clipping
// out-of-range model output.
func scaleProb(p float32) uint8 {
	v := float64(p) * 255.0
	if v < 0 {
		v = 0
	} else if v > 255 {
		v = 255
	}
	return uint8(v + 0.5)
}

func blend(orig, heat, alpha float64) uint8 {
	v := orig*(1-alpha) + heat*alpha
	if v < 0 {
		v = 0
	} else if v > 255 {
		v = 255
	}
	return uint8(v + 0.5)
}
