package classify

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tumorx-ai/tumorx/internal/tumor"
)

type fakePredictor struct {
	shape  []int64
	output []float32
	inputs [][]float32
	err    error
}

func (f *fakePredictor) Predict(input []float32) ([]float32, error) {
	cp := make([]float32, len(input))
	copy(cp, input)
	f.inputs = append(f.inputs, cp)
	if f.err != nil {
		return nil, f.err
	}
	return f.output, nil
}

func (f *fakePredictor) InputShape() []int64 { return f.shape }

func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 37), G: uint8(y * 53), B: 128, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "scan.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestClassifyPicksArgMax(t *testing.T) {
	p := &fakePredictor{
		shape:  []int64{1, 8, 8, 3},
		output: []float32{0.02, 0.925, 0.035, 0.02},
	}
	path := writeTestPNG(t, 16, 16)

	label, confidence, err := Classify(p, path, tumor.ClassNames(), PreprocessNone)
	require.NoError(t, err)
	assert.Equal(t, tumor.Meningioma, label)
	assert.InDelta(t, 92.5, confidence, 1e-4)
}

func TestClassifyIsDeterministic(t *testing.T) {
	p := &fakePredictor{
		shape:  []int64{1, 8, 8, 3},
		output: []float32{0.7, 0.1, 0.1, 0.1},
	}
	path := writeTestPNG(t, 12, 20)

	l1, c1, err := Classify(p, path, tumor.ClassNames(), PreprocessRescale01)
	require.NoError(t, err)
	l2, c2, err := Classify(p, path, tumor.ClassNames(), PreprocessRescale01)
	require.NoError(t, err)

	assert.Equal(t, l1, l2)
	assert.Equal(t, c1, c2)
	require.Len(t, p.inputs, 2)
	assert.Equal(t, p.inputs[0], p.inputs[1])
}

func TestClassifyConfidenceWithinRange(t *testing.T) {
	// A model can emit values slightly outside [0,1]; the reported
	// percentage still stays in [0,100].
	p := &fakePredictor{
		shape:  []int64{1, 8, 8, 3},
		output: []float32{1.03, 0.0, 0.0, 0.0},
	}
	path := writeTestPNG(t, 8, 8)

	_, confidence, err := Classify(p, path, tumor.ClassNames(), PreprocessNone)
	require.NoError(t, err)
	assert.LessOrEqual(t, confidence, 100.0)
	assert.GreaterOrEqual(t, confidence, 0.0)
}

func TestClassifyUnreadableImage(t *testing.T) {
	p := &fakePredictor{shape: []int64{1, 8, 8, 3}}

	_, _, err := Classify(p, filepath.Join(t.TempDir(), "missing.png"), tumor.ClassNames(), PreprocessNone)
	assert.ErrorIs(t, err, ErrUnreadableImage)

	garbage := filepath.Join(t.TempDir(), "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))
	_, _, err = Classify(p, garbage, tumor.ClassNames(), PreprocessNone)
	assert.ErrorIs(t, err, ErrUnreadableImage)
}

func TestClassifyShapeMismatch(t *testing.T) {
	path := writeTestPNG(t, 8, 8)

	// Non-NHWC input shape.
	p := &fakePredictor{shape: []int64{1, 64}}
	_, _, err := Classify(p, path, tumor.ClassNames(), PreprocessNone)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	// Output vector shorter than the label set.
	p = &fakePredictor{shape: []int64{1, 8, 8, 3}, output: []float32{0.5, 0.5}}
	_, _, err = Classify(p, path, tumor.ClassNames(), PreprocessNone)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestPreprocessPolicies(t *testing.T) {
	cases := []struct {
		policy Preprocess
		in     float32
		want   float32
	}{
		{PreprocessNone, 255, 255},
		{PreprocessNone, 0, 0},
		{PreprocessRescale01, 255, 1},
		{PreprocessRescale01, 51, 0.2},
		{PreprocessCenter, 255, 1},
		{PreprocessCenter, 0, -1},
		{PreprocessCenter, 127.5, 0},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, applyPolicy(tc.in, tc.policy), 1e-5)
	}
}

func TestParsePreprocess(t *testing.T) {
	for s, want := range map[string]Preprocess{
		"":          PreprocessNone,
		"none":      PreprocessNone,
		"rescale01": PreprocessRescale01,
		"center":    PreprocessCenter,
	} {
		got, err := ParsePreprocess(s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParsePreprocess("efficientnet")
	assert.Error(t, err)
}
