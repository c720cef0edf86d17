package extract

import (
	"bytes"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ResumeText converts an uploaded resume into plain text.
// The file type is chosen by extension, falling back to content sniffing.
// Supported formats: PDF, DOCX, plain text.
func ResumeText(name string, data []byte) (string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return "", &ExtractionError{Name: name, Message: "uploaded file is empty"}
	}

	var text string
	var err error

	switch resumeKind(name, data) {
	case kindPDF:
		text, err = pdfText(data)
	case kindDocx:
		text, err = docxText(data)
	case kindText:
		text = string(data)
	default:
		return "", &ExtractionError{Name: name, Message: "unsupported file type (expected PDF, DOCX, or plain text)"}
	}

	if err != nil {
		return "", &ExtractionError{Name: name, Message: "failed to read file", Cause: err}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", &ExtractionError{Name: name, Message: "no extractable text in file"}
	}

	return text, nil
}

type fileKind int

const (
	kindUnknown fileKind = iota
	kindPDF
	kindDocx
	kindText
)

// resumeKind picks the extraction strategy for an upload.
func resumeKind(name string, data []byte) fileKind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return kindPDF
	case ".docx":
		return kindDocx
	case ".txt", ".md":
		return kindText
	}

	contentType := http.DetectContentType(data)
	switch {
	case strings.HasPrefix(contentType, "application/pdf"):
		return kindPDF
	case strings.HasPrefix(contentType, "application/zip"):
		// DOCX files are zip archives
		return kindDocx
	case strings.HasPrefix(contentType, "text/"):
		return kindText
	case utf8.Valid(data):
		return kindText
	}
	return kindUnknown
}

// pdfText extracts plain text from all pages of a PDF document.
func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// docxText extracts the document body text from a DOCX file.
func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer func() { _ = doc.Close() }()

	return stripDocxTags(doc.Editable().GetContent()), nil
}

// stripDocxTags removes the WordprocessingML markup GetContent leaves in place,
// keeping paragraph breaks.
func stripDocxTags(content string) string {
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	var sb strings.Builder
	inTag := false
	for _, r := range content {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
