package segment

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePredictor struct {
	output []float32
	err    error
}

func (f *fakePredictor) Predict(input []float32) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.output, nil
}

func writeGrayPNG(t *testing.T, w, h int, value uint8) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: value})
		}
	}
	path := filepath.Join(t.TempDir(), "scan.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func uniformMap(size int, v float32) []float32 {
	out := make([]float32, size*size)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestSegmentUnreadableImage(t *testing.T) {
	p := &fakePredictor{output: uniformMap(4, 0)}
	opts := Options{TargetSize: 4, Alpha: 0.5}

	img, err := Segment(p, filepath.Join(t.TempDir(), "missing.png"), opts)
	assert.Nil(t, img)
	assert.ErrorIs(t, err, ErrUnreadableImage)

	garbage := filepath.Join(t.TempDir(), "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("nope"), 0o644))
	img, err = Segment(p, garbage, opts)
	assert.Nil(t, img)
	assert.ErrorIs(t, err, ErrUnreadableImage)
}

func TestSegmentKeepsOriginalResolution(t *testing.T) {
	p := &fakePredictor{output: uniformMap(4, 0.5)}
	path := writeGrayPNG(t, 20, 30, 100)

	img, err := Segment(p, path, Options{TargetSize: 4, Alpha: 0.5})
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())
}

func TestSegmentAlphaZeroKeepsOriginal(t *testing.T) {
	p := &fakePredictor{output: uniformMap(4, 1)}
	path := writeGrayPNG(t, 8, 8, 77)

	img, err := Segment(p, path, Options{TargetSize: 4, Alpha: 0})
	require.NoError(t, err)

	r, g, b, _ := img.At(3, 3).RGBA()
	assert.Equal(t, uint32(77), r>>8)
	assert.Equal(t, uint32(77), g>>8)
	assert.Equal(t, uint32(77), b>>8)
}

func TestSegmentAlphaOneShowsHeatmap(t *testing.T) {
	p := &fakePredictor{output: uniformMap(4, 1)}
	path := writeGrayPNG(t, 8, 8, 0)

	img, err := Segment(p, path, Options{TargetSize: 4, Alpha: 1})
	require.NoError(t, err)

	// Probability 1 maps to the red end of the jet scale.
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Greater(t, r>>8, uint32(100))
	assert.Equal(t, uint32(0), g>>8)
	assert.Equal(t, uint32(0), b>>8)
}

func TestSegmentInferenceFailure(t *testing.T) {
	p := &fakePredictor{err: assert.AnError}
	path := writeGrayPNG(t, 8, 8, 10)

	img, err := Segment(p, path, Options{TargetSize: 4, Alpha: 0.5})
	assert.Nil(t, img)
	assert.Error(t, err)
}

func TestSegmentOutputSizeMismatch(t *testing.T) {
	p := &fakePredictor{output: uniformMap(3, 0.5)}
	path := writeGrayPNG(t, 8, 8, 10)

	img, err := Segment(p, path, Options{TargetSize: 4, Alpha: 0.5})
	assert.Nil(t, img)
	assert.Error(t, err)
}

func TestJetColorEndpoints(t *testing.T) {
	low := jetColor(0)
	assert.Greater(t, low.B, uint8(100), "low probability should be blue")
	assert.Equal(t, uint8(0), low.R)

	high := jetColor(255)
	assert.Greater(t, high.R, uint8(100), "high probability should be red")
	assert.Equal(t, uint8(0), high.B)

	mid := jetColor(128)
	assert.Greater(t, mid.G, uint8(200), "mid probability should be green")
}

func TestResizeBilinear(t *testing.T) {
	t.Run("identity", func(t *testing.T) {
		src := []float32{1, 2, 3, 4}
		assert.Equal(t, src, resizeBilinear(src, 2, 2, 2, 2))
	})

	t.Run("upscale preserves corners", func(t *testing.T) {
		src := []float32{0, 1, 2, 3}
		dst := resizeBilinear(src, 2, 2, 4, 4)
		assert.InDelta(t, 0, dst[0], 1e-6)
		assert.InDelta(t, 1, dst[3], 1e-6)
		assert.InDelta(t, 2, dst[12], 1e-6)
		assert.InDelta(t, 3, dst[15], 1e-6)
	})

	t.Run("uniform stays uniform", func(t *testing.T) {
		dst := resizeBilinear(uniformMap(4, 0.25), 4, 4, 9, 7)
		for _, v := range dst {
			assert.InDelta(t, 0.25, v, 1e-6)
		}
	})
}
