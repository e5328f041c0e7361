// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdiddy/scandoc/internal/effect"
	"github.com/pdiddy/scandoc/internal/encode"
	"github.com/pdiddy/scandoc/pkg/types"
)

// encodedPages builds n distinct encoded pages.
func encodedPages(t *testing.T, n int) []*encode.EncodedPage {
	t.Helper()
	pages := make([]*encode.EncodedPage, n)
	for i := range pages {
		img := image.NewNRGBA(image.Rect(0, 0, 90, 120))
		for y := 0; y < 120; y++ {
			for x := 0; x < 90; x++ {
				img.SetNRGBA(x, y, color.NRGBA{
					R: uint8((x + y + i*40) % 256),
					G: uint8(x % 256),
					B: uint8(y % 256),
					A: 255,
				})
			}
		}
		p, err := encode.Encode(&effect.TransformedPage{Image: img, Width: 90, Height: 120}, 90)
		if err != nil {
			t.Fatalf("encoding fixture page: %v", err)
		}
		pages[i] = p
	}
	return pages
}

func TestWritePageCount(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "doc_output.pdf")

	if err := Write(encodedPages(t, 3), out); err != nil {
		t.Fatalf("Write: %v", err)
	}

	n, err := PageCount(out)
	if err != nil {
		t.Fatalf("PageCount: %v", err)
	}
	if n != 3 {
		t.Errorf("page count = %d, want 3", n)
	}
}

func TestWriteRestoresSourceGeometry(t *testing.T) {
	// Rasters carry twice the nominal resolution, so a 90x120 pixel page
	// must land on a 45x60 point page, not a doubled one.
	dir := t.TempDir()
	out := filepath.Join(dir, "doc_output.pdf")

	if err := Write(encodedPages(t, 2), out); err != nil {
		t.Fatalf("Write: %v", err)
	}

	dims, err := PageDims(out)
	if err != nil {
		t.Fatalf("PageDims: %v", err)
	}
	if len(dims) != 2 {
		t.Fatalf("got %d pages, want 2", len(dims))
	}
	for i, d := range dims {
		if d.Width != 45 || d.Height != 60 {
			t.Errorf("page %d = %.1fx%.1f pt, want 45x60", i+1, d.Width, d.Height)
		}
	}
}

func TestWriteMixedPageSizes(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "doc_output.pdf")

	small := image.NewNRGBA(image.Rect(0, 0, 60, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 60; x++ {
			small.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 4), G: uint8(y * 3), B: 128, A: 255})
		}
	}
	last, err := encode.Encode(&effect.TransformedPage{Image: small, Width: 60, Height: 80}, 90)
	if err != nil {
		t.Fatalf("encoding fixture page: %v", err)
	}
	pages := append(encodedPages(t, 2), last)

	if err := Write(pages, out); err != nil {
		t.Fatalf("Write: %v", err)
	}

	dims, err := PageDims(out)
	if err != nil {
		t.Fatalf("PageDims: %v", err)
	}
	if len(dims) != 3 {
		t.Fatalf("got %d pages, want 3", len(dims))
	}
	if dims[0].Width != 45 || dims[0].Height != 60 {
		t.Errorf("page 1 = %.1fx%.1f pt, want 45x60", dims[0].Width, dims[0].Height)
	}
	if dims[2].Width != 30 || dims[2].Height != 40 {
		t.Errorf("page 3 = %.1fx%.1f pt, want 30x40", dims[2].Width, dims[2].Height)
	}
}

func TestWriteOverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "doc_output.pdf")

	if err := Write(encodedPages(t, 2), out); err != nil {
		t.Fatalf("first Write: %v", err)
	}
	if err := Write(encodedPages(t, 1), out); err != nil {
		t.Fatalf("second Write: %v", err)
	}

	n, err := PageCount(out)
	if err != nil {
		t.Fatalf("PageCount: %v", err)
	}
	if n != 1 {
		t.Errorf("page count after overwrite = %d, want 1", n)
	}
}

func TestWriteDestinationMissing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "no-such-dir", "doc_output.pdf")

	err := Write(encodedPages(t, 1), out)
	if !errors.Is(err, types.ErrWrite) {
		t.Errorf("err = %v, want ErrWrite", err)
	}
}

func TestWriteBadImageLeavesNothingBehind(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "doc_output.pdf")
	pages := []*encode.EncodedPage{{Data: []byte("not a jpeg"), Quality: 90}}

	err := Write(pages, out)
	if !errors.Is(err, types.ErrWrite) {
		t.Fatalf("err = %v, want ErrWrite", err)
	}

	// Neither the output nor a stray temp file may remain.
	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if len(entries) != 0 {
		t.Errorf("destination directory not clean after failure: %v", entries)
	}
}

func TestWriteEmptyPageList(t *testing.T) {
	err := Write(nil, filepath.Join(t.TempDir(), "doc_output.pdf"))
	if err == nil {
		t.Fatal("expected error for empty page list")
	}
	if errors.Is(err, types.ErrWrite) {
		t.Errorf("empty input is a caller bug, not a write failure: %v", err)
	}
}
