package usecase

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"math"

	"golang.org/x/image/draw"

	"resume-builder/internal/model"
)

// CropKind selects which personal-details image a crop produces.
type CropKind string

const (
	CropPhoto CropKind = "photo"
	CropLogo  CropKind = "logo"
)

const (
	maxPixelRatio = 4
	jpegQuality   = 92
)

func ParseCropKind(s string) (CropKind, error) {
	switch CropKind(s) {
	case CropPhoto, CropLogo:
		return CropKind(s), nil
	}
	return "", opError("crop", ErrInvalidInput, fmt.Sprintf("Unknown image kind %q.", s), nil)
}

// Aspect is width over height of the crop frame.
func (k CropKind) Aspect() float64 {
	if k == CropPhoto {
		return 130.0 / 140.0
	}
	return 1
}

func (k CropKind) Field() string { return string(k) }

// CropRegion is a crop rectangle in percent of the source image.
type CropRegion struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// InitialCrop centres a region 90% as wide as the image at the given aspect.
// When that would be too tall the region is 90% as high instead.
func InitialCrop(width, height int, aspect float64) CropRegion {
	w, h := float64(width), float64(height)
	cw := 0.9 * w
	ch := cw / aspect
	if ch > 0.9*h {
		ch = 0.9 * h
		cw = ch * aspect
	}
	r := CropRegion{Width: cw / w * 100, Height: ch / h * 100}
	r.X = (100 - r.Width) / 2
	r.Y = (100 - r.Height) / 2
	return r
}

// ImageSize decodes only the header of raw.
func ImageSize(raw []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return 0, 0, opError("crop", ErrInvalidInput, MsgUnsupportedImage, err)
	}
	return cfg.Width, cfg.Height, nil
}

// CropImage cuts region out of raw, centre-trims it to aspect (width over
// height), resamples it to pixelRatio times its source size and returns a
// JPEG data URI. A nil region means nothing was confirmed.
func CropImage(raw []byte, region *CropRegion, aspect, pixelRatio float64) (string, error) {
	if region == nil {
		return "", opError("crop", ErrInvalidInput, MsgNoCropRegion, nil)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", opError("crop", ErrInvalidInput, MsgUnsupportedImage, err)
	}
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	pixelRatio = math.Min(pixelRatio, maxPixelRatio)

	b := img.Bounds()
	src := image.Rect(
		b.Min.X+pct(region.X, b.Dx()),
		b.Min.Y+pct(region.Y, b.Dy()),
		b.Min.X+pct(region.X+region.Width, b.Dx()),
		b.Min.Y+pct(region.Y+region.Height, b.Dy()),
	).Intersect(b)
	if src.Empty() {
		return "", opError("crop", ErrInvalidInput, MsgNoCropRegion, nil)
	}
	src = fitAspect(src, aspect)

	dw := max(1, int(math.Round(float64(src.Dx())*pixelRatio)))
	dh := max(1, int(math.Round(float64(src.Dy())*pixelRatio)))
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// fitAspect shrinks the longer side of r around its centre so that
// width/height matches aspect.
func fitAspect(r image.Rectangle, aspect float64) image.Rectangle {
	if aspect <= 0 {
		return r
	}
	w, h := r.Dx(), r.Dy()
	if float64(w) > float64(h)*aspect {
		nw := max(1, int(math.Round(float64(h)*aspect)))
		x := r.Min.X + (w-nw)/2
		return image.Rect(x, r.Min.Y, x+nw, r.Max.Y)
	}
	nh := max(1, int(math.Round(float64(w)/aspect)))
	y := r.Min.Y + (h-nh)/2
	return image.Rect(r.Min.X, y, r.Max.X, y+nh)
}

func pct(p float64, size int) int {
	return int(math.Round(p / 100 * float64(size)))
}

// CropImage crops raw at the kind's aspect and stores the result as the
// session's photo or logo. Nothing is written when cropping fails.
func (e *Editor) CropImage(ctx context.Context, sessionID string, kind CropKind, raw []byte, region *CropRegion, pixelRatio float64) (model.ResumeData, error) {
	uri, err := CropImage(raw, region, kind.Aspect(), pixelRatio)
	if err != nil {
		return model.ResumeData{}, err
	}
	return e.SetImage(ctx, sessionID, kind, uri)
}
