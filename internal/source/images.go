// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"fmt"
	"image"
	"io"
	"os"

	// Page decoders. WEBP has no stdlib codec; golang.org/x/image fills it in.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/pdiddy/scandoc/pkg/types"
)

// ImageSetSource yields each image file as one page, in the order the set
// was resolved. That order is the discovery layer's contract and is never
// changed here.
type ImageSetSource struct {
	paths []string
	next  int
}

// OpenImageSet builds a source over the given image files.
func OpenImageSet(paths []string) (*ImageSetSource, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("image set is empty")
	}
	return &ImageSetSource{paths: paths}, nil
}

// Next decodes and returns the next image, or io.EOF after the last one.
// A file that cannot be decoded fails the whole input with
// types.ErrUnreadableSource.
func (s *ImageSetSource) Next() (*RasterPage, error) {
	if s.next >= len(s.paths) {
		return nil, io.EOF
	}
	path := s.paths[s.next]

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", types.ErrUnreadableSource, path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", types.ErrUnreadableSource, path, err)
	}

	s.next++
	return newRasterPage(img), nil
}

// Len returns the number of images in the set.
func (s *ImageSetSource) Len() int {
	return len(s.paths)
}

// Close is a no-op; files are opened and closed per page.
func (s *ImageSetSource) Close() error {
	return nil
}
