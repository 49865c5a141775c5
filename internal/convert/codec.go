// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"image"
	"io"
	"os"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/jdeng/goheif"
)

// Codec decodes a source image into pixels and encodes pixels as JPEG.
// Implementations: NativeCodec (goheif) and ToolCodec (heif-convert/sips).
type Codec interface {
	// Decode reads the image file at path.
	Decode(path string) (image.Image, error)

	// Encode writes img to w as JPEG at the given quality (1-100).
	Encode(w io.Writer, img image.Image, quality int) error
}

// Registrar is implemented by codecs that need one-time setup before the
// first Decode. The Converter calls Register at most once.
type Registrar interface {
	Register() error
}

// heifBrands are the ISO-BMFF major brands found in HEIC/HEIF files. Each is
// registered with the image package so image.Decode recognizes it.
var heifBrands = []string{"heic", "heix", "hevc", "hevx", "heim", "heis", "mif1", "msf1"}

// registerFormats registers the HEIF brands process-wide. image.RegisterFormat
// appends to a global list, so it must run only once.
var registerFormats = sync.OnceFunc(func() {
	for _, brand := range heifBrands {
		image.RegisterFormat("heif", "????ftyp"+brand, goheif.Decode, goheif.DecodeConfig)
	}
})

// NativeCodec decodes HEIC/HEIF in-process with goheif and encodes JPEG with
// imaging. It requires cgo.
type NativeCodec struct{}

// NewNativeCodec returns the in-process codec.
func NewNativeCodec() *NativeCodec {
	return &NativeCodec{}
}

// Register adds the HEIF formats to the image package. Safe to call
// repeatedly and concurrently.
func (c *NativeCodec) Register() error {
	registerFormats()
	return nil
}

// Decode opens path and decodes it with whichever registered format matches
// its header.
func (c *NativeCodec) Decode(path string) (img image.Image, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	// goheif can panic on malformed boxes.
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("decoding %s: %v", path, r)
		}
	}()

	img, _, err = image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// Encode writes img as JPEG.
func (c *NativeCodec) Encode(w io.Writer, img image.Image, quality int) error {
	return encodeJPEG(w, img, quality)
}

// encodeJPEG writes img to w as baseline JPEG. The encoder writes no EXIF,
// ICC, or other metadata segments.
func encodeJPEG(w io.Writer, img image.Image, quality int) error {
	return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
}

// normalizeRGB copies img into a straight-alpha NRGBA buffer anchored at the
// origin and forces every pixel opaque. Alpha is dropped, not composited, so
// color channels keep their stored values.
func normalizeRGB(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}
