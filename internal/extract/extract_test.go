package extract_test

import (
	"strings"
	"testing"

	"github.com/chriscorrea/ocrtidy/internal/extract"
)

const twoPageHOCR = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN"
    "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">
<html xmlns="http://www.w3.org/1999/xhtml" xml:lang="en" lang="en">
 <head>
  <title></title>
  <meta name='ocr-system' content='tesseract 5.3.0' />
 </head>
 <body>
  <div class='ocr_page' id='page_1' title='image "p1.png"; bbox 0 0 2480 3508; ppageno 0'>
   <div class='ocr_carea' id='block_1_1'>
    <p class='ocr_par' id='par_1_1' lang='por'>
     <span class='ocr_line' id='line_1_1' title='bbox 100 100 900 140'>
      <span class='ocrx_word' id='word_1_1' title='bbox 100 100 200 140; x_wconf 95'>O</span>
      <span class='ocrx_word' id='word_1_2' title='bbox 210 100 500 140; x_wconf 91'>contrato</span>
      <span class='ocrx_word' id='word_1_3' title='bbox 510 100 600 140; x_wconf 93'>foi</span>
     </span>
     <span class='ocr_header' id='line_1_2' title='bbox 100 150 900 190'>
      <span class='ocrx_word' id='word_1_4'>===!</span>
     </span>
    </p>
   </div>
  </div>
  <div class='ocr_page' id='page_2'>
   <div class='ocr_carea'>
    <p class='ocr_par'>
     <span class='ocr_line'><span class='ocrx_word'>assinado</span> <span class='ocrx_word'>ontem</span></span>
    </p>
   </div>
  </div>
 </body>
</html>`

func TestFromHOCR(t *testing.T) {
	got, err := extract.FromHOCR(strings.NewReader(twoPageHOCR))
	if err != nil {
		t.Fatalf("FromHOCR() unexpected error: %v", err)
	}

	want := "O contrato foi\n===!\n\nassinado ontem"
	if got != want {
		t.Errorf("FromHOCR() = %q, want %q", got, want)
	}
}

func TestFromHOCR_LineWithoutWords(t *testing.T) {
	doc := `<div class="ocr_page"><span class="ocr_line">  linha   sem
	palavras marcadas </span></div>`

	got, err := extract.FromHOCR(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("FromHOCR() unexpected error: %v", err)
	}
	if got != "linha sem palavras marcadas" {
		t.Errorf("FromHOCR() = %q", got)
	}
}

func TestFromHOCR_NoLines(t *testing.T) {
	_, err := extract.FromHOCR(strings.NewReader("<html><body><p>plain html</p></body></html>"))
	if err == nil {
		t.Error("FromHOCR() expected error for document without ocr_line elements")
	}
}

func TestIsHOCR(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"scan.hocr", true},
		{"scan.HTML", true},
		{"page.htm", true},
		{"page.txt", false},
		{"-", false},
		{"noext", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := extract.IsHOCR(tt.path); got != tt.expected {
				t.Errorf("IsHOCR(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}
