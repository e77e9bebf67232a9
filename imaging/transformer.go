// Package imaging implements the on-demand image transformation pipeline:
// decode, resize with a fit strategy, and re-encode in a negotiated format.
// Uses pure Go (no CGo) for compatibility with CGO_ENABLED=0 builds.
package imaging

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"math"

	"github.com/gen2brain/webp"
	xdraw "golang.org/x/image/draw"

	"graniteapi.app/errors"
)

// Quality defaults per output format. Omitted-quality requests always get a
// sane non-zero value.
const (
	DefaultWebPQuality = 80
	DefaultJPEGQuality = 85
)

// Options controls a single transformation. Zero Width/Height preserve the
// source dimension on that axis; validation of positivity happens before the
// transformer is reached.
type Options struct {
	Width   int
	Height  int
	Format  Format // empty preserves the source format
	Quality int    // 0 selects the per-format default
	Fit     Fit    // empty selects cover
}

// Result is a finished transformation. ContentType always reflects the format
// actually produced, never merely the requested one.
type Result struct {
	Data        []byte
	ContentType string
	Format      Format
	Width       int
	Height      int
	ETag        string
}

// Transformer converts raw encoded image bytes according to Options.
type Transformer struct{}

func NewTransformer() *Transformer {
	return &Transformer{}
}

// Optimize decodes, resizes, and re-encodes sourceBytes. Requests with no
// dimensions and no format conversion short-circuit and return the source
// bytes unchanged; a quality setting alone does not trigger a re-encode.
func (t *Transformer) Optimize(sourceBytes []byte, opts Options) (*Result, error) {
	if len(sourceBytes) == 0 {
		return nil, errors.NewTransformError("empty image data", nil)
	}

	if opts.Width == 0 && opts.Height == 0 && opts.Format == "" {
		return passthrough(sourceBytes)
	}

	img, sourceFormat, err := image.Decode(bytes.NewReader(sourceBytes))
	if err != nil {
		return nil, errors.NewTransformError("decode image", err)
	}

	outFormat := opts.Format
	if outFormat == "" {
		outFormat = formatFromName(sourceFormat)
	}

	resized := resize(img, opts, outFormat)

	encoded, err := encode(resized, outFormat, opts.Quality)
	if err != nil {
		return nil, err
	}

	bounds := resized.Bounds()
	return &Result{
		Data:        encoded,
		ContentType: outFormat.ContentType(),
		Format:      outFormat,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		ETag:        etag(encoded),
	}, nil
}

func passthrough(sourceBytes []byte) (*Result, error) {
	cfg, name, err := image.DecodeConfig(bytes.NewReader(sourceBytes))
	if err != nil {
		return nil, errors.NewTransformError("decode image", err)
	}

	format := formatFromName(name)
	return &Result{
		Data:        sourceBytes,
		ContentType: format.ContentType(),
		Format:      format,
		Width:       cfg.Width,
		Height:      cfg.Height,
		ETag:        etag(sourceBytes),
	}, nil
}

func formatFromName(name string) Format {
	switch name {
	case "png":
		return FormatPNG
	case "gif":
		return FormatGIF
	case "webp":
		return FormatWebP
	default:
		return FormatJPEG
	}
}

func resize(img image.Image, opts Options, outFormat Format) image.Image {
	bounds := img.Bounds()
	sw, sh := bounds.Dx(), bounds.Dy()
	w, h := opts.Width, opts.Height

	if w == 0 && h == 0 {
		return img
	}

	// One missing axis follows the source aspect ratio regardless of fit.
	if w == 0 {
		w = scaledDim(sw, float64(h)/float64(sh))
		return scaleTo(img, w, h)
	}
	if h == 0 {
		h = scaledDim(sh, float64(w)/float64(sw))
		return scaleTo(img, w, h)
	}

	fit := opts.Fit
	if fit == "" {
		fit = FitCover
	}

	switch fit {
	case FitFill:
		return scaleTo(img, w, h)
	case FitCover:
		return scaleCover(img, w, h)
	case FitContain:
		return scaleContain(img, w, h, padColor(outFormat))
	case FitInside:
		ratio := math.Min(float64(w)/float64(sw), float64(h)/float64(sh))
		return scaleTo(img, scaledDim(sw, ratio), scaledDim(sh, ratio))
	case FitOutside:
		ratio := math.Max(float64(w)/float64(sw), float64(h)/float64(sh))
		return scaleTo(img, scaledDim(sw, ratio), scaledDim(sh, ratio))
	default:
		return scaleCover(img, w, h)
	}
}

func scaledDim(dim int, ratio float64) int {
	scaled := int(math.Round(float64(dim) * ratio))
	if scaled < 1 {
		return 1
	}
	return scaled
}

func scaleTo(img image.Image, w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// scaleCover fills the target box completely, center-cropping whichever axis
// overflows.
func scaleCover(img image.Image, w, h int) image.Image {
	bounds := img.Bounds()
	sw, sh := bounds.Dx(), bounds.Dy()

	srcAspect := float64(sw) / float64(sh)
	dstAspect := float64(w) / float64(h)

	cropRect := bounds
	if srcAspect > dstAspect {
		cropW := int(math.Round(float64(sh) * dstAspect))
		offset := (sw - cropW) / 2
		cropRect = image.Rect(bounds.Min.X+offset, bounds.Min.Y, bounds.Min.X+offset+cropW, bounds.Max.Y)
	} else if srcAspect < dstAspect {
		cropH := int(math.Round(float64(sw) / dstAspect))
		offset := (sh - cropH) / 2
		cropRect = image.Rect(bounds.Min.X, bounds.Min.Y+offset, bounds.Max.X, bounds.Min.Y+offset+cropH)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, cropRect, xdraw.Src, nil)
	return dst
}

// scaleContain fits the whole subject inside the target box and pads the
// remainder, so product shots stay uncropped in modal views.
func scaleContain(img image.Image, w, h int, background color.Color) image.Image {
	bounds := img.Bounds()
	sw, sh := bounds.Dx(), bounds.Dy()

	ratio := math.Min(float64(w)/float64(sw), float64(h)/float64(sh))
	nw, nh := scaledDim(sw, ratio), scaledDim(sh, ratio)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	offsetX := (w - nw) / 2
	offsetY := (h - nh) / 2
	inner := image.Rect(offsetX, offsetY, offsetX+nw, offsetY+nh)
	xdraw.CatmullRom.Scale(dst, inner, img, bounds, xdraw.Over, nil)
	return dst
}

// padColor picks the contain-fit background: transparent where the output
// format has an alpha channel, white where it does not.
func padColor(format Format) color.Color {
	switch format {
	case FormatJPEG, FormatGIF:
		return color.White
	default:
		return color.Transparent
	}
}

func encode(img image.Image, format Format, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case FormatWebP:
		if quality <= 0 {
			quality = DefaultWebPQuality
		}
		if err := webp.Encode(&buf, img, webp.Options{Quality: quality}); err != nil {
			return nil, errors.NewTransformError("encode webp", err)
		}
	case FormatJPEG:
		if quality <= 0 {
			quality = DefaultJPEGQuality
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, errors.NewTransformError("encode jpeg", err)
		}
	case FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, errors.NewTransformError("encode png", err)
		}
	case FormatGIF:
		if err := gif.Encode(&buf, img, nil); err != nil {
			return nil, errors.NewTransformError("encode gif", err)
		}
	default:
		return nil, errors.NewTransformError("unsupported output format: "+string(format), nil)
	}

	return buf.Bytes(), nil
}

// etag derives a content hash identifier from the encoded bytes.
func etag(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:16])
}
