// Package report assembles the downloadable PDF report from a finished
// analysis: results table, scan images, reference text for the predicted
// label, a full reference appendix and the fixed medical disclaimers.
package report

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/tumorx-ai/tumorx/internal/tumor"
)

// Filename is the download name offered to the user.
const Filename = "TumorX_Report.pdf"

// Params carries everything the generator needs. OverlayPath may be empty
// when segmentation produced no overlay; Confidence is a percentage in
// [0,100].
type Params struct {
	OriginalPath string
	OverlayPath  string
	Label        tumor.Label
	Confidence   float64
	GeneratedAt  time.Time
}

var disclaimers = []struct {
	title string
	body  string
}{
	{"AI Technology Limitations", "This analysis is performed by artificial intelligence and machine learning algorithms. While highly accurate, AI systems can make errors and should never replace professional medical judgment."},
	{"Not a Medical Diagnosis", "This report provides AI-assisted analysis for informational purposes only. It does not constitute a medical diagnosis, treatment recommendation, or medical advice."},
	{"Professional Medical Consultation Required", "Any abnormal findings require immediate consultation with qualified medical professionals including radiologists, neurologists, or neurosurgeons."},
	{"Imaging Limitations", "MRI interpretation depends on image quality, patient positioning, contrast usage, and scanning parameters. Some conditions may not be visible on MRI."},
	{"Emergency Situations", "If experiencing severe headaches, seizures, vision changes, or neurological symptoms, seek immediate medical attention regardless of this AI analysis."},
	{"Second Opinion Recommended", "For any positive findings, obtain a second opinion from qualified medical professionals and consider additional diagnostic tests."},
	{"Data Privacy", "Medical imaging data processed by this system is handled according to healthcare privacy regulations. No personal health information is stored permanently."},
	{"Regulatory Status", "This AI system is for research and educational purposes. It is not FDA-approved for clinical diagnosis."},
}

// Generate builds the PDF in memory and returns the buffer ready for
// transfer. Missing image files drop their slot from the images section
// rather than failing the document.
func Generate(p Params) (*bytes.Buffer, error) {
	if p.GeneratedAt.IsZero() {
		p.GeneratedAt = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(25, 25, 25)
	pdf.AddPage()

	writeHeader(pdf, p.GeneratedAt)
	writeResults(pdf, p)
	writeImages(pdf, p.OriginalPath, p.OverlayPath)
	writeDetails(pdf, p.Label)
	writeReferenceGuide(pdf)
	writeDisclaimers(pdf)
	writeFooter(pdf, p.GeneratedAt)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("build pdf: %w", err)
	}
	return &buf, nil
}

// ReportID derives the synthesized report identifier from the generation
// timestamp.
func ReportID(t time.Time) string {
	return "TX-" + t.Format("20060102150405")
}

// riskAssessment is the qualitative line shown in the results table.
func riskAssessment(label tumor.Label) string {
	if label.Positive() {
		return "HIGH PRIORITY - Requires medical attention"
	}
	return "NORMAL - No tumor detected"
}

// formatConfidence renders the percentage with exactly two decimals.
func formatConfidence(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

func writeHeader(pdf *gofpdf.Fpdf, now time.Time) {
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(51, 77, 179)
	pdf.CellFormat(0, 12, "TUMORX", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 6, "AI-Powered Brain Tumor Detection & Analysis", "", 1, "C", false, 0, "")

	pdf.SetDrawColor(77, 102, 204)
	pdf.SetLineWidth(0.6)
	pdf.Line(25, pdf.GetY()+2, 185, pdf.GetY()+2)
	pdf.Ln(8)

	rows := [][2]string{
		{"Report Generated:", now.Format("January 2, 2006 at 15:04:05")},
		{"Analysis Method:", "Deep Learning Neural Networks"},
		{"Model Version:", "TumorX v2.1.0"},
		{"Report ID:", ReportID(now)},
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.CellFormat(50, 6, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(8)
}

// usableImage reports whether path points at an image gofpdf can embed.
// Absent or undecodable files drop their slot instead of failing the report.
func usableImage(path string) bool {
	if path == "" {
		return false
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif":
	default:
		return false
	}

	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	_, _, err = image.DecodeConfig(f)
	return err == nil
}

func writeImages(pdf *gofpdf.Fpdf, originalPath, overlayPath string) {
	type slot struct {
		caption string
		path    string
	}
	var slots []slot
	if usableImage(originalPath) {
		slots = append(slots, slot{"Original MRI Scan", originalPath})
	}
	if usableImage(overlayPath) {
		slots = append(slots, slot{"AI Segmentation Analysis", overlayPath})
	}
	if len(slots) == 0 {
		return
	}

	sectionHeading(pdf, "MRI SCAN ANALYSIS")

	const size = 65.0
	x := 25.0
	y := pdf.GetY()
	pdf.SetFont("Helvetica", "B", 10)
	for _, s := range slots {
		pdf.SetXY(x, y)
		pdf.CellFormat(size, 6, s.caption, "", 0, "C", false, 0, "")
		pdf.ImageOptions(s.path, x, y+7, size, size, false,
			gofpdf.ImageOptions{ReadDpi: true}, 0, "")
		x += size + 10
	}
	pdf.SetY(y + size + 12)
}

func writeResults(pdf *gofpdf.Fpdf, p Params) {
	sectionHeading(pdf, "AI DIAGNOSTIC RESULTS")

	rows := [][2]string{
		{"Classification Result", p.Label.String()},
		{"Confidence Level", formatConfidence(p.Confidence)},
		{"Risk Assessment", riskAssessment(p.Label)},
	}

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	for i, row := range rows {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(55, 9, row[0], "1", 0, "L", false, 0, "")

		if i == 2 {
			if p.Label.Positive() {
				pdf.SetTextColor(200, 0, 0)
			} else {
				pdf.SetTextColor(0, 140, 0)
			}
			pdf.SetFont("Helvetica", "B", 11)
		} else {
			pdf.SetFont("Helvetica", "", 11)
		}
		pdf.CellFormat(0, 9, row[1], "1", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(8)
}

func writeDetails(pdf *gofpdf.Fpdf, label tumor.Label) {
	info := label.Info()
	if info.Description == "" {
		// Unknown label: skip the section, the rest of the report stands.
		return
	}

	sectionHeading(pdf, "DETAILED MEDICAL INFORMATION")
	boldLine(pdf, fmt.Sprintf("About %s:", label))
	bodyText(pdf, info.Description)
	pdf.Ln(4)

	if label.Positive() {
		bulletList(pdf, "Common Types/Subtypes:", info.Types)
		bulletList(pdf, "Common Symptoms:", info.Symptoms)
		bulletList(pdf, "Treatment Options:", info.Treatments)
		boldLine(pdf, "Prognosis:")
		bodyText(pdf, info.Prognosis)
		pdf.Ln(2)
		boldLine(pdf, "Prevalence:")
		bodyText(pdf, info.Prevalence)
	} else {
		bulletList(pdf, "Normal Findings Detected:", info.NormalFindings)
		bulletList(pdf, "Recommendations:", info.Recommendations)
		bodyText(pdf, info.Note)
	}
	pdf.Ln(4)
}

func writeReferenceGuide(pdf *gofpdf.Fpdf) {
	pdf.AddPage()
	sectionHeading(pdf, "BRAIN TUMOR REFERENCE GUIDE")
	bodyText(pdf, "Complete overview of brain tumor types analyzed by the TumorX AI system:")
	pdf.Ln(4)

	for _, label := range tumor.ClassNames() {
		if !label.Positive() {
			continue
		}
		info := label.Info()
		boldLine(pdf, label.String())
		bodyText(pdf, info.Description)
		pdf.SetFont("Helvetica", "I", 11)
		pdf.MultiCell(0, 6, "Prevalence: "+info.Prevalence, "", "L", false)
		pdf.Ln(4)
	}
}

func writeDisclaimers(pdf *gofpdf.Fpdf) {
	pdf.AddPage()
	sectionHeading(pdf, "MEDICAL DISCLAIMERS & IMPORTANT INFORMATION")

	for _, d := range disclaimers {
		boldLine(pdf, d.title+":")
		bodyText(pdf, d.body)
		pdf.Ln(3)
	}
}

func writeFooter(pdf *gofpdf.Fpdf, now time.Time) {
	pdf.Ln(8)
	pdf.SetDrawColor(128, 128, 128)
	pdf.SetLineWidth(0.3)
	pdf.Line(25, pdf.GetY(), 185, pdf.GetY())
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(110, 110, 110)
	lines := []string{
		"TumorX AI System",
		"Advanced Brain Tumor Detection Platform",
		"Powered by Deep Learning & Computer Vision",
		"For research and educational use only",
		"Generated on " + now.Format("January 2, 2006"),
	}
	for _, line := range lines {
		pdf.CellFormat(0, 5, line, "", 1, "C", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
}

func sectionHeading(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(77, 102, 204)
	pdf.CellFormat(0, 10, title, "B", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(3)
}

func boldLine(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.MultiCell(0, 6, text, "", "L", false)
}

func bodyText(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, text, "", "L", false)
}

func bulletList(pdf *gofpdf.Fpdf, title string, items []string) {
	boldLine(pdf, title)
	pdf.SetFont("Helvetica", "", 11)
	for _, item := range items {
		pdf.MultiCell(0, 6, "- "+item, "", "L", false)
	}
	pdf.Ln(2)
}
