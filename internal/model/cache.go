// Package model loads serialized ONNX artifacts and runs forward passes
// through ONNX Runtime. Sessions are held in an explicit cache so a model is
// parsed from disk at most once per process.
package model

import (
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// Cache hands out Sessions keyed by model path with get-or-load semantics.
// The zero value is not usable; construct with NewCache and inject it where
// models are needed.
type Cache struct {
	mu       sync.Mutex
	sessions map[string]*Session
	load     func(modelPath, metadataPath string) (*Session, error)
}

func NewCache() *Cache {
	return &Cache{
		sessions: make(map[string]*Session),
		load:     loadSession,
	}
}

func loadSession(modelPath, metadataPath string) (*Session, error) {
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, err
		}
	}
	return newSession(modelPath, metadataPath)
}

// GetOrLoad returns the cached session for modelPath, loading it on first
// use. Repeated calls with the same path return the same handle. Failures
// are reported as *LoadError and nothing is cached, so a later call can
// retry after the artifact is fixed.
func (c *Cache) GetOrLoad(modelPath, metadataPath string) (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.sessions[modelPath]; ok {
		return s, nil
	}

	s, err := c.load(modelPath, metadataPath)
	if err != nil {
		return nil, &LoadError{Path: modelPath, Err: err}
	}
	c.sessions[modelPath] = s
	return s, nil
}

// Close releases every cached session and the ONNX Runtime environment.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for path, s := range c.sessions {
		s.Close()
		delete(c.sessions, path)
	}
	if ort.IsInitialized() {
		ort.DestroyEnvironment()
	}
}
