// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source extracts raster pages from inputs: each page of a PDF,
// or each image of an image set treated as one page.
// See docs/ARCHITECTURE § Page Sources.
package source

import (
	"fmt"
	"image"

	"github.com/pdiddy/scandoc/pkg/types"
)

// RasterPage is one decoded page bitmap. A page is owned by the pipeline
// invocation that pulled it and is discarded before the next page is
// produced.
type RasterPage struct {
	Image  image.Image
	Width  int
	Height int

	// Mode is the decoded color mode: "rgb", "gray", or "cmyk".
	Mode string
}

// PageSource yields the pages of one input in source order. The sequence is
// lazy, finite, and not restartable.
type PageSource interface {
	// Next returns the next page, or io.EOF after the last one.
	Next() (*RasterPage, error)

	// Len is the total number of pages the source will yield.
	Len() int

	// Close releases any underlying resources.
	Close() error
}

// Open resolves a descriptor to its page source.
func Open(desc types.InputDescriptor) (PageSource, error) {
	switch desc.Kind {
	case types.KindPDF:
		return OpenPDF(desc.Primary())
	case types.KindImageSet:
		return OpenImageSet(desc.Paths)
	default:
		return nil, fmt.Errorf("unsupported input kind %q", desc.Kind)
	}
}

// newRasterPage wraps a decoded image, recording its dimensions and mode.
func newRasterPage(img image.Image) *RasterPage {
	b := img.Bounds()
	mode := "rgb"
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		mode = "gray"
	case *image.CMYK:
		mode = "cmyk"
	}
	return &RasterPage{
		Image:  img,
		Width:  b.Dx(),
		Height: b.Dy(),
		Mode:   mode,
	}
}
