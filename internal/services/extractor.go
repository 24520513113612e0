package services

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"banana/jobboard/internal/models"
)

// ExtractorService converts an uploaded resume file into plain text.
// PDF and DOCX are the only supported document types.
type ExtractorService interface {
	ExtractText(filePath string) (string, error)
	Supported(filename string) bool
}

type extractorService struct{}

func NewExtractorService() ExtractorService {
	return &extractorService{}
}

// Supported implements ExtractorService.
func (e *extractorService) Supported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".docx":
		return true
	default:
		return false
	}
}

// ExtractText implements ExtractorService.
func (e *extractorService) ExtractText(filePath string) (string, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return "", fmt.Errorf("file does not exist: %s", filePath)
	}

	var (
		text string
		err  error
	)

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".pdf":
		text, err = extractPDF(filePath)
	case ".docx":
		text, err = extractDocx(filePath)
	default:
		return "", models.ErrUnsupportedFileType
	}

	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", models.ErrEmptyDocument
	}

	return text, nil
}

func extractPDF(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest.
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return textBuilder.String(), nil
}

var (
	docxParagraph = regexp.MustCompile(`</w:p>`)
	docxRun       = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)
	xmlEscapes    = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&apos;", "'",
	)
)

func extractDocx(filePath string) (string, error) {
	r, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer r.Close()

	content := r.Editable().GetContent()

	var textBuilder strings.Builder
	for _, paragraph := range docxParagraph.Split(content, -1) {
		matches := docxRun.FindAllStringSubmatch(paragraph, -1)
		if len(matches) == 0 {
			continue
		}
		for _, match := range matches {
			textBuilder.WriteString(xmlEscapes.Replace(match[1]))
		}
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}

// CleanText normalizes extracted text: trims lines and drops empty ones.
func CleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
