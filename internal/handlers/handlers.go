// Package handlers wires the analysis pipeline to the HTTP surface: scan
// upload, result rendering and PDF report download.
package handlers

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/tumorx-ai/tumorx/internal/analysis"
	"github.com/tumorx-ai/tumorx/internal/report"
	"github.com/tumorx-ai/tumorx/internal/storage"
)

type Handler struct {
	service   *analysis.Service
	uploadDir string
}

func NewHandler(service *analysis.Service, uploadDir string) *Handler {
	return &Handler{service: service, uploadDir: uploadDir}
}

// Register mounts all routes on the fiber app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/health", h.Health)
	app.Post("/analyze", h.Analyze)
	app.Get("/result/:id", h.Result)
	app.Get("/report/:id", h.Report)
	app.Static("/uploads", h.uploadDir)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy"})
}

// Analyze accepts a multipart upload under the "image" field, runs the
// pipeline and responds with an HTML result fragment.
func (h *Handler) Analyze(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(
			`<p class="error">Please select an MRI image to upload.</p>`,
		)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png":
	default:
		return c.Status(fiber.StatusBadRequest).SendString(
			`<p class="error">Unsupported file type. Please upload a JPEG or PNG image.</p>`,
		)
	}

	id := uuid.New().String()
	savePath := filepath.Join(h.uploadDir, id+ext)
	if err := c.SaveFile(file, savePath); err != nil {
		log.Printf("Save upload failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString(
			`<p class="error">Could not save the uploaded file on the server.</p>`,
		)
	}

	a, err := h.service.Analyze(id, savePath)
	if err != nil {
		log.Printf("Analysis failed for %s: %v", savePath, err)
		return c.Status(fiber.StatusInternalServerError).SendString(
			`<p class="error">Error analyzing the MRI scan. Please try a different image.</p>`,
		)
	}

	return c.SendString(h.resultFragment(a))
}

// Result re-renders the result fragment for a finished analysis, so the
// page can be restored without re-running inference.
func (h *Handler) Result(c *fiber.Ctx) error {
	a, err := h.service.Get(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString(
			`<p class="error">No analysis found. Please upload a scan first.</p>`,
		)
	}
	return c.SendString(h.resultFragment(a))
}

// Report streams the PDF for a finished analysis as a download.
func (h *Handler) Report(c *fiber.Ctx) error {
	buf, err := h.service.Report(c.Params("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).SendString(
				`<p class="error">No analysis found for this report. Please upload a scan first.</p>`,
			)
		}
		log.Printf("Report generation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString(
			`<p class="error">Could not generate the report. Please try again.</p>`,
		)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", report.Filename))
	return c.Send(buf.Bytes())
}

func (h *Handler) resultFragment(a *analysis.Analysis) string {
	var b strings.Builder

	b.WriteString(`<div class="results">`)

	b.WriteString(`<div class="scans">`)
	fmt.Fprintf(&b, `<figure><figcaption>Original MRI Scan</figcaption><img src="/uploads/%s" alt="Original MRI scan"></figure>`,
		filepath.Base(a.ImagePath))
	if a.HasOverlay() {
		fmt.Fprintf(&b, `<figure><figcaption>AI Segmentation Analysis</figcaption><img src="/uploads/%s" alt="Segmentation overlay"></figure>`,
			filepath.Base(a.OverlayPath))
	} else {
		b.WriteString(`<p class="warning">Segmentation analysis could not be performed on this image.</p>`)
	}
	b.WriteString(`</div>`)

	cssClass, message := "normal", "No tumor detected - Scan appears normal"
	if a.Label.Positive() {
		cssClass, message = "alert", "Consult medical professional immediately"
	}
	fmt.Fprintf(&b, `<div class="prediction %s">`, cssClass)
	fmt.Fprintf(&b, `<h3>%s</h3>`, strings.ToUpper(a.Label.String()))
	fmt.Fprintf(&b, `<p>Model Confidence: %.1f%%</p>`, a.Confidence)
	fmt.Fprintf(&b, `<p class="message">%s</p>`, message)
	b.WriteString(`</div>`)

	fmt.Fprintf(&b, `<a class="report-link" href="/report/%s" download>Download PDF Report</a>`, a.ID)
	b.WriteString(`</div>`)

	return b.String()
}
