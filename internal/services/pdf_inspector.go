package services

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFInspector reads upload metadata for logging. Its output never feeds the
// analysis itself.
type PDFInspector interface {
	Inspect(r io.Reader) (*PDFInfo, error)
}

type PDFInfo struct {
	PageCount int
	TextChars int
}

type pdfInspector struct {
	maxTextPages int
}

func NewPDFInspector() PDFInspector {
	return &pdfInspector{maxTextPages: 3}
}

func (p *pdfInspector) Inspect(r io.Reader) (info *PDFInfo, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty PDF")
	}

	// the pdf package panics on some malformed inputs
	defer func() {
		if rec := recover(); rec != nil {
			info = nil
			err = fmt.Errorf("malformed PDF: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	info = &PDFInfo{PageCount: reader.NumPage()}

	for pageIndex := 1; pageIndex <= info.PageCount && pageIndex <= p.maxTextPages; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		info.TextChars += len(strings.TrimSpace(text))
	}

	return info, nil
}
