package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"gopkg.in/yaml.v3"

	"taskboard/internal/service"
	"taskboard/internal/taskview"
)

// FormatPDF is accepted by Export in addition to json and yaml.
const FormatPDF = "pdf"

// Export encodes a task collection as a standalone document.
func Export(tasks []service.Task, format string) ([]byte, error) {
	if tasks == nil {
		tasks = []service.Task{}
	}
	switch strings.ToLower(format) {
	case FormatJSON:
		return json.MarshalIndent(tasks, "", "  ")
	case FormatYAML:
		return yaml.Marshal(tasks)
	case FormatPDF:
		return exportPDF(tasks)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

func exportPDF(tasks []service.Task) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	if len(tasks) == 0 {
		pdf.Cell(0, 10, tr(taskview.EmptyText))
	} else {
		pdf.Cell(0, 10, tr(taskview.HeadingText))
	}
	pdf.Ln(14)

	for _, t := range tasks {
		pdf.SetFont("Arial", "B", 12)
		pdf.MultiCell(0, 6, tr(t.Title), "", "L", false)
		pdf.SetFont("Courier", "", 10)
		pdf.MultiCell(0, 5, tr(t.Content), "", "L", false)
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
