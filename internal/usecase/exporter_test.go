package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/model"
)

const realImage = "data:image/jpeg;base64,/9j/4AAQ"

type exportFixture struct {
	exporter  *Exporter
	editor    *Editor
	capturer  *fakeCapturer
	assembler *recordingAssembler
	sid       string
}

func newExportFixture(t *testing.T, capturer *fakeCapturer, withImages bool) *exportFixture {
	t.Helper()
	store := newStore()
	ed := NewEditor(store, model.NewSequenceGenerator("id"), nopLog)
	s := ed.CreateSession(context.Background())
	if withImages {
		_, err := ed.SetImage(context.Background(), s.ID.String(), CropPhoto, realImage)
		require.NoError(t, err)
		_, err = ed.SetImage(context.Background(), s.ID.String(), CropLogo, realImage)
		require.NoError(t, err)
	}
	asm := &recordingAssembler{}
	return &exportFixture{
		exporter:  NewExporter(store, fakeRenderer{}, capturer, asm, 0, nopLog),
		editor:    ed,
		capturer:  capturer,
		assembler: asm,
		sid:       s.ID.String(),
	}
}

func TestExportRequiresImages(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name        string
		photo, logo bool
		msg         string
	}{
		{"both missing", false, false, MsgMissingBoth},
		{"photo missing", false, true, MsgMissingPhoto},
		{"logo missing", true, false, MsgMissingLogo},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newExportFixture(t, &fakeCapturer{panels: 2}, false)
			if tc.photo {
				_, err := f.editor.SetImage(ctx, f.sid, CropPhoto, realImage)
				require.NoError(t, err)
			}
			if tc.logo {
				_, err := f.editor.SetImage(ctx, f.sid, CropLogo, realImage)
				require.NoError(t, err)
			}

			out, err := f.exporter.Export(ctx, f.sid)
			require.ErrorIs(t, err, ErrExportPrecondition)
			assert.Nil(t, out)
			assert.Equal(t, tc.msg, UserMessage(err))
			assert.Empty(t, f.assembler.docs, "nothing is captured")

			notice, err := f.editor.Notice(ctx, f.sid)
			require.NoError(t, err)
			assert.Equal(t, tc.msg, notice)
		})
	}
}

func TestExportOnePagePerPanelInOrder(t *testing.T) {
	f := newExportFixture(t, &fakeCapturer{panels: 3}, true)

	out, err := f.exporter.Export(context.Background(), f.sid)
	require.NoError(t, err)

	assert.Equal(t, 3, out.Pages)
	assert.Equal(t, "JOHN_DOE_Resume.pdf", out.Filename)
	assert.Equal(t, "%PDF|png-0|png-1|png-2", string(out.PDF))
	assert.Equal(t, []int{0, 1, 2}, f.capturer.order)
	assert.Equal(t, 1, f.capturer.closed)
}

func TestExportIsRepeatable(t *testing.T) {
	f := newExportFixture(t, &fakeCapturer{panels: 2}, true)

	first, err := f.exporter.Export(context.Background(), f.sid)
	require.NoError(t, err)
	second, err := f.exporter.Export(context.Background(), f.sid)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, f.assembler.docs, 2)
}

func TestExportCaptureFailureDiscardsDocument(t *testing.T) {
	f := newExportFixture(t, &fakeCapturer{panels: 3, failAt: 2}, true)

	out, err := f.exporter.Export(context.Background(), f.sid)
	require.ErrorIs(t, err, ErrCapture)
	assert.Nil(t, out)
	assert.Equal(t, MsgCaptureFailed, UserMessage(err))
	assert.Equal(t, []int{0}, f.capturer.order)
	assert.Equal(t, 1, f.capturer.closed)
}

func TestExportWithoutPanels(t *testing.T) {
	f := newExportFixture(t, &fakeCapturer{panels: 0}, true)

	_, err := f.exporter.Export(context.Background(), f.sid)
	require.ErrorIs(t, err, ErrCapture)
	assert.Equal(t, MsgNoPanels, UserMessage(err))
}

func TestExportBrowserUnavailable(t *testing.T) {
	f := newExportFixture(t, &fakeCapturer{openErr: errors.New("chrome not found")}, true)

	_, err := f.exporter.Export(context.Background(), f.sid)
	require.ErrorIs(t, err, ErrCapture)
	assert.Equal(t, MsgCaptureFailed, UserMessage(err))
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "JOHN_DOE_Resume.pdf", ExportFilename("JOHN DOE"))
	assert.Equal(t, "Ana__Maria_Resume.pdf", ExportFilename("Ana\t Maria"))
	assert.Equal(t, "_Resume.pdf", ExportFilename(""))
}

func TestPreviewUsesCurrentData(t *testing.T) {
	ctx := context.Background()
	f := newExportFixture(t, &fakeCapturer{}, false)
	_, err := f.editor.UpdatePersonal(ctx, f.sid, "name", "Jane Roe")
	require.NoError(t, err)

	html, err := f.exporter.Preview(ctx, f.sid)
	require.NoError(t, err)
	assert.Equal(t, "<html>Jane Roe</html>", html)

	_, err = f.exporter.Preview(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
