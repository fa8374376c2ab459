package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
)

// CoverOptions controls how a downloaded cover is post-processed.
type CoverOptions struct {
	// Resize shrinks the cover to fit MaxSize x MaxSize.
	Resize  bool
	MaxSize int

	// ToJPEG re-encodes the cover as JPEG.
	ToJPEG bool
}

// ImageService processes beatmap covers before they are saved to disk or
// embedded into audio previews.
type ImageService struct {
	quality int
}

// NewImageService creates an ImageService encoding JPEGs at quality 90.
func NewImageService() *ImageService {
	return &ImageService{quality: 90}
}

// Prepare applies opts to a cover. The original bytes are returned untouched
// when no option is enabled.
func (s *ImageService) Prepare(ctx context.Context, data []byte, opts CoverOptions) ([]byte, error) {
	if opts.Resize && opts.MaxSize > 0 {
		return s.ResizeImage(ctx, data, opts.MaxSize, opts.MaxSize)
	}
	if opts.ToJPEG {
		return s.ConvertToJPEG(ctx, data)
	}
	return data, nil
}

// ResizeImage resizes an image to fit within the specified maximum dimensions.
//
// The aspect ratio is preserved and images that already fit are only
// re-encoded. The result is always JPEG. The Catmull-Rom kernel is used
// for scaling.
//
// Example:
//
//	// A 1920x360 cover becomes 1000x187
//	resized, err := svc.ResizeImage(ctx, coverData, 1000, 1000)
func (s *ImageService) ResizeImage(ctx context.Context, data []byte, maxWidth, maxHeight int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	return s.encode(dst)
}

// ConvertToJPEG converts an image to JPEG format.
func (s *ImageService) ConvertToJPEG(ctx context.Context, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return s.encode(img)
}

func (s *ImageService) encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: s.quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fitWithin scales width x height down to fit maxWidth x maxHeight keeping
// the aspect ratio. Sizes that already fit are returned unchanged.
func fitWithin(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}

	ratio := float64(width) / float64(height)
	if float64(maxWidth)/float64(maxHeight) > ratio {
		// Height is the limiting factor
		return max(1, int(float64(maxHeight)*ratio)), maxHeight
	}
	// Width is the limiting factor
	return maxWidth, max(1, int(float64(maxWidth)/ratio))
}
