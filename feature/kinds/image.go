package kinds

import (
	"context"
	"fmt"
	"image"
	"io"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image is a decoded raster image.
type Image struct {
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Format string      `json:"format"`
	Pixels image.Image `json:"-"`
}

// ImageExtensions are routed to the image kind.
var ImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// DecodeImage decodes any registered image format.
func DecodeImage(ctx context.Context, key string, r io.Reader) (*Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	b := img.Bounds()
	return &Image{Width: b.Dx(), Height: b.Dy(), Format: format, Pixels: img}, nil
}
