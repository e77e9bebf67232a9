package imaging

import "strings"

// Format identifies an image container format the pipeline can produce.
type Format string

const (
	FormatWebP Format = "webp"
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatGIF  Format = "gif"
)

// ParseFormat maps a user-supplied format parameter to a Format. The empty
// string means "preserve the source format" and is reported as ok.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", true
	case "webp":
		return FormatWebP, true
	case "jpeg", "jpg":
		return FormatJPEG, true
	case "png":
		return FormatPNG, true
	case "gif":
		return FormatGIF, true
	}
	return "", false
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatWebP:
		return "image/webp"
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	case FormatGIF:
		return "image/gif"
	}
	return "application/octet-stream"
}

// NegotiateFormat picks the output format from an Accept header. AVIF-capable
// clients also accept WebP, and no pure-Go AVIF encoder exists, so an AVIF
// preference is answered with WebP. Clients advertising neither get JPEG.
func NegotiateFormat(accept string) Format {
	if strings.Contains(accept, "image/webp") || strings.Contains(accept, "image/avif") {
		return FormatWebP
	}
	return FormatJPEG
}

// Fit is the resize strategy applied when both target dimensions are given.
type Fit string

const (
	// FitCover scales to fill the target box and center-crops the overflow.
	FitCover Fit = "cover"
	// FitContain scales to fit inside the target box and pads the remainder
	// with the background color, keeping the full subject visible.
	FitContain Fit = "contain"
	// FitFill stretches to the exact target dimensions, ignoring aspect ratio.
	FitFill Fit = "fill"
	// FitInside scales to fit inside the target box without padding.
	FitInside Fit = "inside"
	// FitOutside scales to cover the target box without cropping.
	FitOutside Fit = "outside"
)

// ParseFit maps a user-supplied fit parameter to a Fit. The empty string
// selects the default cover strategy.
func ParseFit(s string) (Fit, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return FitCover, true
	case "cover":
		return FitCover, true
	case "contain":
		return FitContain, true
	case "fill":
		return FitFill, true
	case "inside":
		return FitInside, true
	case "outside":
		return FitOutside, true
	}
	return "", false
}
