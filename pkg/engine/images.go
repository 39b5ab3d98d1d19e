package engine

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/dotkit/pkg/errors"
)

// ImageSize returns the pixel dimensions of the image at path. Only the
// header is decoded.
func ImageSize(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, errors.Wrap(errors.ErrCodeNotFound, err, "image %s", path)
		}
		return 0, 0, errors.Wrap(errors.ErrCodeInvalidPath, err, "open image %s", path)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode image header %s", path)
	}
	return cfg.Width, cfg.Height, nil
}
