package model

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// Session wraps one ONNX Runtime session with preallocated input/output
// tensors. A Session is built once per model artifact and reused for every
// forward pass; Predict serializes concurrent callers so the shared tensors
// are never interleaved between two requests.
type Session struct {
	session      *ort.AdvancedSession
	meta         Metadata
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]

	mu     sync.Mutex
	input  []float32
	output []float32
	run    func() error
}

func newSession(modelPath, metadataPath string) (*Session, error) {
	metaFile, err := os.ReadFile(metadataPath)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}

	var meta Metadata
	if err := json.Unmarshal(metaFile, &meta); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	if meta.InputName == "" {
		meta.InputName = "input"
	}
	if meta.OutputName == "" {
		meta.OutputName = "output"
	}

	inputShape := ort.NewShape(meta.InputShape...)
	outputShape := ort.NewShape(meta.OutputShape...)

	inputTensor, err := ort.NewEmptyTensor[float32](inputShape)
	if err != nil {
		return nil, fmt.Errorf("create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{meta.InputName}, []string{meta.OutputName},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &Session{
		session:      session,
		meta:         meta,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
		input:        inputTensor.GetData(),
		output:       outputTensor.GetData(),
		run:          session.Run,
	}, nil
}

// InputShape returns the declared input tensor shape, e.g. [1 224 224 3].
func (s *Session) InputShape() []int64 {
	out := make([]int64, len(s.meta.InputShape))
	copy(out, s.meta.InputShape)
	return out
}

// Metadata returns the artifact metadata the session was built from.
func (s *Session) Metadata() Metadata { return s.meta }

// Predict copies input into the session's input tensor, runs one forward
// pass and returns a copy of the output tensor. The copy-run-read sequence
// holds the session lock so concurrent requests cannot corrupt each other's
// predictions.
func (s *Session) Predict(input []float32) ([]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(input) != len(s.input) {
		return nil, fmt.Errorf("input size %d does not match model tensor size %d", len(input), len(s.input))
	}
	copy(s.input, input)

	if err := s.run(); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	out := make([]float32, len(s.output))
	copy(out, s.output)
	return out, nil
}

// Close releases the session and its tensors.
func (s *Session) Close() {
	if s.inputTensor != nil {
		s.inputTensor.Destroy()
	}
	if s.outputTensor != nil {
		s.outputTensor.Destroy()
	}
	if s.session != nil {
		s.session.Destroy()
	}
}
