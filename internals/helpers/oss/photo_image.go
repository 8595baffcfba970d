// internals/helpers/oss/photo_image.go
package helper

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

/* =======================================================================
   Decode gambar (jpeg/png/webp) dari []byte dengan sniff MIME
======================================================================= */

func DecodePhoto(all []byte, filename string) (image.Image, string, error) {
	if len(all) == 0 {
		return nil, "", fmt.Errorf("empty file")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	var (
		img    image.Image
		format string
		err    error
	)

	switch {
	case strings.Contains(ct, "jpeg"):
		img, err = jpeg.Decode(bytes.NewReader(all))
		format = "jpeg"
	case strings.Contains(ct, "png"):
		img, err = png.Decode(bytes.NewReader(all))
		format = "png"
	case strings.Contains(ct, "webp"):
		img, err = webp.Decode(bytes.NewReader(all))
		format = "webp"
	default:
		// fallback by extension
		ext := strings.ToLower(filepath.Ext(filename))
		switch ext {
		case ".jpg", ".jpeg":
			img, err = jpeg.Decode(bytes.NewReader(all))
			format = "jpeg"
		case ".png":
			img, err = png.Decode(bytes.NewReader(all))
			format = "png"
		case ".webp":
			img, err = webp.Decode(bytes.NewReader(all))
			format = "webp"
		default:
			return nil, "", fmt.Errorf("format tidak didukung: %s / %s", ct, ext)
		}
	}
	if err != nil {
		return nil, "", err
	}
	return img, format, nil
}

/* =======================================================================
   Downscale opsional sebelum upload (keep aspect, format dipertahankan)
======================================================================= */

// PreparePhoto memvalidasi bahwa bytes adalah gambar jpg/png/webp dan,
// bila melebihi maxW/maxH, menurunkan dimensinya dengan re-encode pada
// format aslinya. maxW/maxH <= 0 = tanpa downscale (hanya validasi).
func PreparePhoto(all []byte, filename string, maxW, maxH int) ([]byte, error) {
	img, format, err := DecodePhoto(all, filename)
	if err != nil {
		return nil, err
	}
	if maxW <= 0 && maxH <= 0 {
		return all, nil
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if (maxW <= 0 || w <= maxW) && (maxH <= 0 || h <= maxH) {
		return all, nil
	}

	scale := 1.0
	if maxW > 0 {
		scale = math.Min(scale, float64(maxW)/float64(w))
	}
	if maxH > 0 {
		scale = math.Min(scale, float64(maxH)/float64(h))
	}
	nw := int(math.Round(float64(w) * scale))
	nh := int(math.Round(float64(h) * scale))
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)

	buf := new(bytes.Buffer)
	switch format {
	case "jpeg":
		err = jpeg.Encode(buf, dst, &jpeg.Options{Quality: 85})
	case "png":
		err = png.Encode(buf, dst)
	case "webp":
		err = webp.Encode(buf, dst, &webp.Options{Lossless: false, Quality: 85})
	default:
		return all, nil
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
