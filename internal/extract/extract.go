// Package extract turns OCR engine output into raw text lines.
// Plain text passes through untouched; hOCR (the HTML flavour Tesseract emits)
// is flattened to one text line per ocr_line element.
package extract

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// lineSelector matches every hOCR element that holds one line of text
const lineSelector = ".ocr_line, .ocr_header, .ocr_caption, .ocr_textfloat"

// IsHOCR reports whether path looks like an hOCR file by its extension.
func IsHOCR(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hocr", ".html", ".htm", ".xhtml":
		return true
	default:
		return false
	}
}

// FromHOCR reads an hOCR document and returns its text, one line per
// ocr_line element and pages separated by a blank line.
func FromHOCR(content io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse hOCR: %w", err)
	}

	pages := doc.Find(".ocr_page")
	if pages.Length() == 0 {
		// fragments without a page wrapper are treated as one page
		pages = doc.Selection
	}

	var texts []string
	pages.Each(func(_ int, page *goquery.Selection) {
		var lines []string
		page.Find(lineSelector).Each(func(_ int, line *goquery.Selection) {
			lines = append(lines, lineText(line))
		})
		texts = append(texts, strings.Join(lines, "\n"))
	})

	if doc.Find(lineSelector).Length() == 0 {
		return "", fmt.Errorf("no hOCR lines found")
	}

	return strings.Join(texts, "\n\n"), nil
}

// lineText joins the words of an hOCR line with single spaces
func lineText(line *goquery.Selection) string {
	words := line.Find(".ocrx_word")
	if words.Length() == 0 {
		return strings.Join(strings.Fields(line.Text()), " ")
	}

	parts := make([]string, 0, words.Length())
	words.Each(func(_ int, w *goquery.Selection) {
		if text := strings.TrimSpace(w.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, " ")
}
