package ioutils

import (
	"bytes"
	"image"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	"image/png"

	"github.com/spf13/afero"
	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// ImageService converts disc textures and pack icons to PNG, the only
// image format the game loads.
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// IsPNG reports whether data starts with the PNG signature.
func (s *ImageService) IsPNG(data []byte) bool {
	return bytes.HasPrefix(data, pngSignature)
}

// ToPNG decodes an image in any registered format and encodes it as PNG.
func (s *ImageService) ToPNG(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CopyAsPNG copies src to dst on fsys.
//
// PNG data is copied verbatim. Other decodable images are transcoded to
// PNG and converted is true. Data that no registered decoder accepts is
// copied verbatim as well; the game will show a missing texture for it.
func (s *ImageService) CopyAsPNG(fsys afero.Fs, src, dst string) (converted bool, err error) {
	data, err := afero.ReadFile(fsys, src)
	if err != nil {
		return false, err
	}

	if !s.IsPNG(data) {
		if out, convErr := s.ToPNG(data); convErr == nil {
			data = out
			converted = true
		}
	}

	if err := afero.WriteFile(fsys, dst, data, 0644); err != nil {
		return false, err
	}
	return converted, nil
}
