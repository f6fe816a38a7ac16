// Package document extracts plain text from uploaded resume files.
package document

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Kind tags the format of a document.
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
)

// ErrUnsupportedType is returned for formats other than PDF and DOCX.
var ErrUnsupportedType = errors.New("unsupported document type")

// KindFromFilename detects the document kind from the file extension.
func KindFromFilename(name string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(name))) {
	case ".pdf":
		return KindPDF, nil
	case ".docx":
		return KindDOCX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, name)
	}
}

// Extractor turns document bytes into text. Extract satisfies it as a function.
type Extractor interface {
	Extract(data []byte, kind Kind) (string, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(data []byte, kind Kind) (string, error)

func (f ExtractorFunc) Extract(data []byte, kind Kind) (string, error) { return f(data, kind) }

// Default is the library-backed extractor.
var Default Extractor = ExtractorFunc(Extract)

// Extract returns the trimmed plain text of the document. An empty result with a nil
// error means the document parsed but holds no text.
func Extract(data []byte, kind Kind) (string, error) {
	var (
		text string
		err  error
	)

	switch kind {
	case KindPDF:
		text, err = extractPDF(data)
	case KindDOCX:
		text, err = extractDOCX(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, kind)
	}
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}

func extractPDF(data []byte) (text string, err error) {
	// the pdf reader panics on some malformed inputs instead of returning an error
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("read pdf: malformed document: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read pdf page %d: %w", i, err)
		}
		builder.WriteString(pageText)
	}

	return builder.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	defer doc.Close()

	text, err := paragraphs(doc.Editable().GetContent())
	if err != nil {
		return "", fmt.Errorf("read docx body: %w", err)
	}

	return text, nil
}

// paragraphs collects the w:t runs of a WordprocessingML body, one line per w:p.
func paragraphs(body string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(body))

	var (
		builder strings.Builder
		inText  bool
	)
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "br":
				builder.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				builder.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				builder.Write(t)
			}
		}
	}

	return builder.String(), nil
}
