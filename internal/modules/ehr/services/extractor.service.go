package services

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	blankLinesPattern = regexp.MustCompile(`\n\s*\n`)
	spacesPattern     = regexp.MustCompile(` +`)
)

// PDFExtractor extrait le texte brut d'un dossier médical au format PDF
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract retourne le texte de toutes les pages, espaces normalisés.
// Erreur si le document est illisible ou ne contient aucun texte.
func (e *PDFExtractor) Extract(content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	plainText, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plainText); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}

	text := buf.String()
	text = blankLinesPattern.ReplaceAllString(text, "\n\n")
	text = spacesPattern.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	if text == "" {
		return "", fmt.Errorf("no extractable text in PDF")
	}

	return text, nil
}
