package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/tumorx-ai/tumorx/internal/analysis"
	"github.com/tumorx-ai/tumorx/internal/classify"
	"github.com/tumorx-ai/tumorx/internal/config"
	"github.com/tumorx-ai/tumorx/internal/handlers"
	"github.com/tumorx-ai/tumorx/internal/model"
	"github.com/tumorx-ai/tumorx/internal/segment"
	"github.com/tumorx-ai/tumorx/internal/storage"
	"github.com/tumorx-ai/tumorx/internal/tumor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, os.ModePerm); err != nil {
		log.Fatalf("Could not create upload directory: %v", err)
	}

	policy, err := classify.ParsePreprocess(cfg.Preprocess)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	cache := model.NewCache()
	defer cache.Close()

	log.Printf("Loading classifier from: %s", cfg.ClassifierModel)
	classifierSession, err := cache.GetOrLoad(cfg.ClassifierModel, cfg.ClassifierMeta)
	if err != nil {
		log.Fatalf("Failed to load classification model: %v", err)
	}

	log.Printf("Loading segmentation model from: %s", cfg.SegmenterModel)
	segmenterSession, err := cache.GetOrLoad(cfg.SegmenterModel, cfg.SegmenterMeta)
	if err != nil {
		log.Fatalf("Failed to load segmentation model: %v", err)
	}

	// The label order comes from the artifact metadata when declared, so
	// the enum and the model output stay in agreement.
	labels := tumor.ClassNames()
	if classes := classifierSession.Metadata().Classes; len(classes) > 0 {
		labels, err = tumor.LabelsFromClasses(classes)
		if err != nil {
			log.Fatalf("Classifier metadata does not match the known label set: %v", err)
		}
	}
	log.Printf("Classes: %v", labels)

	classifier := classify.NewModel(classifierSession, labels, policy)
	segmenter := segment.NewModel(segmenterSession, segment.Options{
		TargetSize: cfg.SegmentTargetSize,
		Alpha:      cfg.SegmentAlpha,
	})

	service := analysis.NewService(classifier, segmenter, storage.NewMemoryAnalysisStore())
	handler := handlers.NewHandler(service, cfg.UploadDir)

	app := fiber.New()
	app.Use(logger.New())
	app.Static("/", "./public")
	handler.Register(app)

	log.Printf("Server is starting on http://localhost:%s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
