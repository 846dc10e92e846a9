// Package config reads the service configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	UploadDir string

	ClassifierModel string
	ClassifierMeta  string
	SegmenterModel  string
	SegmenterMeta   string

	// Preprocess is the classifier pixel policy: none, rescale01 or center.
	Preprocess string

	SegmentTargetSize int
	SegmentAlpha      float64
}

// Load reads configuration from the environment. A missing .env file is not
// an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		UploadDir:         getEnv("UPLOAD_DIR", "./uploads"),
		ClassifierModel:   getEnv("CLASSIFIER_MODEL", "models/classifier.onnx"),
		ClassifierMeta:    getEnv("CLASSIFIER_META", "models/classifier_metadata.json"),
		SegmenterModel:    getEnv("SEGMENTER_MODEL", "models/unet.onnx"),
		SegmenterMeta:     getEnv("SEGMENTER_META", "models/unet_metadata.json"),
		Preprocess:        getEnv("CLASSIFIER_PREPROCESS", "none"),
		SegmentTargetSize: 128,
		SegmentAlpha:      0.5,
	}

	if v := os.Getenv("SEGMENT_TARGET_SIZE"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("SEGMENT_TARGET_SIZE must be a positive integer, got %q", v)
		}
		cfg.SegmentTargetSize = size
	}

	if v := os.Getenv("SEGMENT_ALPHA"); v != "" {
		alpha, err := strconv.ParseFloat(v, 64)
		if err != nil || alpha < 0 || alpha > 1 {
			return nil, fmt.Errorf("SEGMENT_ALPHA must be in [0,1], got %q", v)
		}
		cfg.SegmentAlpha = alpha
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
