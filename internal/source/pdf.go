// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"errors"
	"fmt"
	"io"

	"github.com/gen2brain/go-fitz"

	"github.com/pdiddy/scandoc/pkg/types"
)

// renderDPI is the fixed rasterization resolution for PDF pages. 144 dpi is
// twice the PDF point grid: enough for the askew and brightness effects to
// look convincing without inflating the output.
const renderDPI = 144

// PdfSource rasterizes the pages of one PDF via MuPDF, one page per Next
// call so only a single page's bitmap is in memory at a time.
type PdfSource struct {
	doc  *fitz.Document
	path string
	page int
}

// OpenPDF opens the PDF at path for page-by-page rasterization. Encrypted
// documents fail with types.ErrPasswordProtected, anything else that MuPDF
// cannot open with types.ErrUnreadableSource.
func OpenPDF(path string) (*PdfSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		if errors.Is(err, fitz.ErrNeedsPassword) {
			return nil, fmt.Errorf("%w: %s", types.ErrPasswordProtected, path)
		}
		return nil, fmt.Errorf("%w: opening %s: %v", types.ErrUnreadableSource, path, err)
	}
	return &PdfSource{doc: doc, path: path}, nil
}

// Next rasterizes and returns the next page, or io.EOF past the last one.
func (s *PdfSource) Next() (*RasterPage, error) {
	if s.page >= s.doc.NumPage() {
		return nil, io.EOF
	}
	img, err := s.doc.ImageDPI(s.page, renderDPI)
	if err != nil {
		return nil, fmt.Errorf("%w: rendering page %d of %s: %v",
			types.ErrUnreadableSource, s.page+1, s.path, err)
	}
	s.page++
	return newRasterPage(img), nil
}

// Len returns the page count of the document.
func (s *PdfSource) Len() int {
	return s.doc.NumPage()
}

// Close releases the MuPDF document.
func (s *PdfSource) Close() error {
	return s.doc.Close()
}
