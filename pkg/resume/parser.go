// Package resume extracts plain text from uploaded resume files.
package resume

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	pdf "github.com/ledongthuc/pdf"

	"github.com/nexphase/nexcareer/pkg/result"
)

// Extraction is the text of a document and, for PDFs, its page count.
type Extraction struct {
	Text      string
	PageCount int
}

// Parser is the text-extraction port.
type Parser interface {
	ExtractText(ctx context.Context, data []byte) result.Result[Extraction]
}

var ErrUnsupportedFormat = errors.New("unsupported file format: only pdf, docx and plain text are allowed")

var (
	pdfMagic = []byte("%PDF-")
	zipMagic = []byte("PK\x03\x04")
	utf8BOM  = []byte("\xEF\xBB\xBF")
)

// FileParser reads PDF, DOCX and plain-text documents, sniffing the format
// from content.
type FileParser struct{}

var _ Parser = FileParser{}

func NewParser() FileParser { return FileParser{} }

func (FileParser) ExtractText(ctx context.Context, data []byte) result.Result[Extraction] {
	var (
		ex  Extraction
		err error
	)
	switch {
	case bytes.HasPrefix(data, pdfMagic):
		ex, err = extractTextFromPDF(data)
	case bytes.HasPrefix(data, zipMagic):
		ex.Text, err = extractTextFromDocx(data)
	case isPlainText(data):
		ex.Text = normalizeWhitespace(string(bytes.TrimPrefix(data, utf8BOM)))
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		return result.Fail[Extraction](err)
	}
	return result.Ok(ex)
}

func extractTextFromPDF(data []byte) (ex Extraction, err error) {
	// ledongthuc/pdf panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Extraction{}, err
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return Extraction{}, err
	}
	var buf bytes.Buffer
	if _, err = io.Copy(&buf, rs); err != nil {
		return Extraction{}, err
	}
	return Extraction{Text: normalizeWhitespace(buf.String()), PageCount: r.NumPage()}, nil
}

var reTags = regexp.MustCompile(`<[^>]+>`)

func extractTextFromDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var docXML []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		docXML, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", err
		}
		break
	}
	if len(docXML) == 0 {
		return "", errors.New("no document.xml found in docx")
	}
	xml := string(docXML)
	// paragraph boundaries become newlines
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	txt := html.UnescapeString(reTags.ReplaceAllString(xml, ""))
	return normalizeWhitespace(txt), nil
}

// isPlainText accepts valid UTF-8 without NUL bytes.
func isPlainText(data []byte) bool {
	return len(data) > 0 && utf8.Valid(data) && bytes.IndexByte(data, 0) < 0
}

var (
	reBlanks   = regexp.MustCompile(`[ \t\r\f\v]+`)
	reNewlines = regexp.MustCompile(` *\n[ \n]*`)
)

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00A0", " ")
	s = reBlanks.ReplaceAllString(s, " ")
	s = reNewlines.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
