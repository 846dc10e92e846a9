package model

import "fmt"

// Metadata describes a serialized model artifact. It lives in a JSON file
// next to the .onnx file and declares the tensor shapes the session is built
// with.
type Metadata struct {
	InputShape  []int64  `json:"input_shape"`
	OutputShape []int64  `json:"output_shape"`
	Classes     []string `json:"classes,omitempty"`
	InputName   string   `json:"input_name,omitempty"`
	OutputName  string   `json:"output_name,omitempty"`
}

// LoadError reports a model artifact that could not be turned into a usable
// session: missing file, unparseable metadata, or an incompatible graph.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load model %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
