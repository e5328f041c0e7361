// Package encode re-encodes transformed pages as lossy JPEG at the
// configured quality.
package encode

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"github.com/pdiddy/scandoc/internal/effect"
	"github.com/pdiddy/scandoc/pkg/types"
)

// EncodedPage is a compressed page ready for embedding into the output
// document. It is held by the assembler until write time, then discarded.
type EncodedPage struct {
	Data    []byte
	Quality int
	Width   int
	Height  int
}

// Encode compresses a transformed page at the given quality. Quality is
// clamped to the supported range; higher quality yields monotonically
// larger output. Codec failures map to types.ErrEncoding.
func Encode(p *effect.TransformedPage, quality int) (*EncodedPage, error) {
	if p == nil || p.Image == nil {
		return nil, fmt.Errorf("%w: nil page", types.ErrEncoding)
	}
	quality = types.ClampQuality(quality)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, p.Image, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrEncoding, err)
	}

	return &EncodedPage{
		Data:    buf.Bytes(),
		Quality: quality,
		Width:   p.Width,
		Height:  p.Height,
	}, nil
}
