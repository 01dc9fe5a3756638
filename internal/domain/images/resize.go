// Package images resizes thumbnails and generated artwork.
package images

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	// WebP decoding for image.Decode.
	_ "golang.org/x/image/webp"

	"github.com/pubkit/pubkit/internal/types"
)

// Resize scales src to exactly width x height, ignoring aspect ratio.
func Resize(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

// ResizeFile decodes a PNG, JPEG or WebP file, resizes it and writes it in
// the format named by the output extension.
func ResizeFile(inPath, outPath string, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("width and height must be positive, got %dx%d", width, height)
	}
	enc, err := encoderFor(outPath)
	if err != nil {
		return err
	}
	f, err := os.Open(inPath)
	if err != nil {
		return &types.MissingInputError{Kind: "image", Path: inPath, Err: err}
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", inPath, err)
	}
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := enc(out, Resize(src, width, height)); err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", outPath, err)
	}
	return out.Close()
}

func encoderFor(path string) (func(io.Writer, image.Image) error, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Encode, nil
	case ".jpg", ".jpeg":
		return func(w io.Writer, m image.Image) error {
			return jpeg.Encode(w, m, &jpeg.Options{Quality: 95})
		}, nil
	}
	return nil, fmt.Errorf("unsupported output format %q: use .png, .jpg or .jpeg", filepath.Ext(path))
}
