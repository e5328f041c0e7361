// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assemble combines encoded pages into a single output PDF.
// See docs/ARCHITECTURE § Assembly.
package assemble

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdftypes "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/pdiddy/scandoc/internal/encode"
	"github.com/pdiddy/scandoc/pkg/types"
)

// pixelsPerPoint maps rendered pixels back to PDF points. Pages render at
// twice their nominal resolution for quality, so halving the dimensions on
// import restores the source page size; standalone images are halved the
// same way.
const pixelsPerPoint = 2

// Write assembles pages, in order, into a PDF at outPath, one full page per
// image with the page sized to the source geometry. Any pre-existing file at
// outPath is replaced. The document is built in a temp file in the
// destination directory and renamed into place on success, so a failure
// never leaves a partial output behind. Destination problems map to
// types.ErrWrite.
func Write(pages []*encode.EncodedPage, outPath string) error {
	if len(pages) == 0 {
		return fmt.Errorf("no pages to assemble for %s", outPath)
	}

	doc, err := buildDocument(pages)
	if err != nil {
		return fmt.Errorf("%w: assembling %s: %v", types.ErrWrite, outPath, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(outPath), ".scandoc-*.pdf")
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", types.ErrWrite, outPath, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: writing %s: %v", types.ErrWrite, outPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: closing %s: %v", types.ErrWrite, outPath, err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: replacing %s: %v", types.ErrWrite, outPath, err)
	}
	return nil
}

// buildDocument imports the encoded pages into a PDF held in memory. The
// import config carries one page size, so runs of same-size pages go in one
// pass and each further pass appends to the document built so far.
func buildDocument(pages []*encode.EncodedPage) ([]byte, error) {
	var doc []byte
	for start := 0; start < len(pages); {
		end := start + 1
		for end < len(pages) && pages[end].Width == pages[start].Width && pages[end].Height == pages[start].Height {
			end++
		}

		readers := make([]io.Reader, 0, end-start)
		for _, p := range pages[start:end] {
			readers = append(readers, bytes.NewReader(p.Data))
		}

		var rs io.ReadSeeker
		if doc != nil {
			rs = bytes.NewReader(doc)
		}
		var buf bytes.Buffer
		if err := api.ImportImages(rs, &buf, readers, importConfig(pages[start]), nil); err != nil {
			return nil, err
		}
		doc = buf.Bytes()
		start = end
	}
	return doc, nil
}

// importConfig sizes the page from the pixel dimensions so each image fills
// a page of its source geometry. A centered image at relative scale 1.0
// covers the page exactly because page and image share the aspect ratio;
// the Full anchor cannot be used here since it takes the page size from the
// image.
func importConfig(p *encode.EncodedPage) *pdfcpu.Import {
	return &pdfcpu.Import{
		PageDim: &pdftypes.Dim{
			Width:  float64(p.Width) / pixelsPerPoint,
			Height: float64(p.Height) / pixelsPerPoint,
		},
		Pos:     pdftypes.Center,
		Scale:   1.0,
		InpUnit: pdftypes.POINTS,
	}
}

// PageCount returns the number of pages in the PDF at path.
func PageCount(path string) (int, error) {
	return api.PageCountFile(path)
}

// PageDims returns the media box dimensions, in points, of every page in the
// PDF at path.
func PageDims(path string) ([]pdftypes.Dim, error) {
	return api.PageDimsFile(path)
}
