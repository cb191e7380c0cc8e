package usecase

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/model"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeDataURI(t *testing.T, uri string) image.Image {
	t.Helper()
	const prefix = "data:image/jpeg;base64,"
	require.True(t, strings.HasPrefix(uri, prefix))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	require.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func TestInitialCrop(t *testing.T) {
	wide := InitialCrop(1000, 500, 1)
	assert.InDelta(t, 45, wide.Width, 1e-9)
	assert.InDelta(t, 90, wide.Height, 1e-9)
	assert.InDelta(t, 27.5, wide.X, 1e-9)
	assert.InDelta(t, 5, wide.Y, 1e-9)

	tall := InitialCrop(500, 1000, 1)
	assert.InDelta(t, 90, tall.Width, 1e-9)
	assert.InDelta(t, 45, tall.Height, 1e-9)
	assert.InDelta(t, 5, tall.X, 1e-9)
	assert.InDelta(t, 27.5, tall.Y, 1e-9)

	photo := InitialCrop(1300, 1400, CropPhoto.Aspect())
	assert.InDelta(t, 90, photo.Width, 1e-9)
	assert.InDelta(t, 90, photo.Height, 1e-9)
}

func TestCropImageScalesByPixelRatio(t *testing.T) {
	raw := pngBytes(t, 200, 100)
	region := &CropRegion{X: 10, Y: 20, Width: 50, Height: 60}

	uri, err := CropImage(raw, region, 0, 2)
	require.NoError(t, err)
	b := decodeDataURI(t, uri).Bounds()
	assert.Equal(t, 200, b.Dx())
	assert.Equal(t, 120, b.Dy())

	uri, err = CropImage(raw, region, 1, 10)
	require.NoError(t, err)
	b = decodeDataURI(t, uri).Bounds()
	assert.Equal(t, 240, b.Dx(), "ratio is capped")
	assert.Equal(t, 240, b.Dy())
}

func TestEditorCropImageEnforcesKindAspect(t *testing.T) {
	ctx := context.Background()
	full := &CropRegion{Width: 100, Height: 100}
	tests := []struct {
		name         string
		kind         CropKind
		w, h         int
		wantW, wantH int
	}{
		{"photo from wide", CropPhoto, 200, 100, 93, 100},
		{"photo from tall", CropPhoto, 100, 300, 100, 108},
		{"logo from wide", CropLogo, 200, 100, 100, 100},
		{"logo from tall", CropLogo, 100, 300, 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := NewEditor(newStore(), model.NewSequenceGenerator("id"), nopLog)
			sid := ed.CreateSession(ctx).ID.String()

			out, err := ed.CropImage(ctx, sid, tt.kind, pngBytes(t, tt.w, tt.h), full, 1)
			require.NoError(t, err)
			uri := out.PersonalDetails.Photo
			if tt.kind == CropLogo {
				uri = out.PersonalDetails.Logo
			}
			b := decodeDataURI(t, uri).Bounds()
			assert.Equal(t, tt.wantW, b.Dx())
			assert.Equal(t, tt.wantH, b.Dy())
			assert.InDelta(t, tt.kind.Aspect(), float64(b.Dx())/float64(b.Dy()), 0.01)
		})
	}
}

func TestCropImageRejectsBadInput(t *testing.T) {
	_, err := CropImage(pngBytes(t, 10, 10), nil, 1, 1)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, MsgNoCropRegion, UserMessage(err))

	_, err = CropImage([]byte("not an image"), &CropRegion{Width: 50, Height: 50}, 1, 1)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, MsgUnsupportedImage, UserMessage(err))

	_, err = CropImage(pngBytes(t, 10, 10), &CropRegion{X: 100, Y: 100, Width: 10, Height: 10}, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestImageSize(t *testing.T) {
	w, h, err := ImageSize(pngBytes(t, 31, 17))
	require.NoError(t, err)
	assert.Equal(t, 31, w)
	assert.Equal(t, 17, h)
}

func TestEditorCropImageStoresDataURI(t *testing.T) {
	ctx := context.Background()
	ed := NewEditor(newStore(), model.NewSequenceGenerator("id"), nopLog)
	sid := ed.CreateSession(ctx).ID.String()

	out, err := ed.CropImage(ctx, sid, CropLogo, pngBytes(t, 40, 40), &CropRegion{X: 5, Y: 5, Width: 90, Height: 90}, 1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.PersonalDetails.Logo, "data:image/jpeg;base64,"))
	assert.Equal(t, model.PlaceholderPhoto, out.PersonalDetails.Photo)

	_, err = ed.CropImage(ctx, sid, CropPhoto, pngBytes(t, 40, 40), nil, 1)
	require.ErrorIs(t, err, ErrInvalidInput)
	d, _ := ed.Get(ctx, sid)
	assert.Equal(t, model.PlaceholderPhoto, d.PersonalDetails.Photo)
}

func TestParseCropKind(t *testing.T) {
	k, err := ParseCropKind("photo")
	require.NoError(t, err)
	assert.Equal(t, CropPhoto, k)
	assert.InDelta(t, 130.0/140.0, k.Aspect(), 1e-9)

	_, err = ParseCropKind("banner")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
