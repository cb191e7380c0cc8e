package http

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/adapter/repository"
	"resume-builder/internal/model"
	"resume-builder/internal/render"
	"resume-builder/internal/usecase"
)

type stubExtractor struct{ pages []string }

func (s stubExtractor) Pages(context.Context, []byte) ([]string, error) { return s.pages, nil }

type stubAI struct{ out string }

func (s stubAI) Format(context.Context, string) (string, error) { return s.out, nil }

type stubCapturer struct{}

func (stubCapturer) Open(context.Context, string) (usecase.CaptureSession, error) {
	return stubSession{}, nil
}

type stubSession struct{}

func (stubSession) PanelCount() int { return 2 }

func (stubSession) CapturePanel(context.Context, int, float64) ([]byte, error) {
	return []byte("png"), nil
}

func (stubSession) Close() error { return nil }

type stubAssembler struct{}

func (stubAssembler) NewDocument() usecase.Document { return &stubDoc{pages: 1} }

type stubDoc struct{ pages int }

func (d *stubDoc) AddPage() { d.pages++ }

func (d *stubDoc) PlaceFullPageImage([]byte) error { return nil }

func (d *stubDoc) PageCount() int { return d.pages }

func (d *stubDoc) Bytes() ([]byte, error) { return []byte("%PDF-1.3 stub"), nil }

func newTestApp(t *testing.T, pages []string) *fiber.App {
	t.Helper()
	log := zerolog.Nop()
	store := repository.NewSessionRepo(time.Second)
	ids := model.NewSequenceGenerator("id")
	renderer, err := render.New()
	require.NoError(t, err)

	h := NewHandler(
		usecase.NewEditor(store, ids, log),
		usecase.NewImporter(store, stubExtractor{pages: pages}, stubAI{out: `{"summary": "Imported."}`}, ids, log),
		usecase.NewEnhancer(store, stubAI{out: "Sharper."}, log),
		usecase.NewExporter(store, renderer, stubCapturer{}, stubAssembler{}, 2, log),
		log,
	)
	app := fiber.New()
	Use(app, log)
	h.Register(app)
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func jsonReq(method, path string, body any) *http.Request {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func multipartReq(t *testing.T, path, contentType string, file []byte, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="upload"`)
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(file)
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func createSession(t *testing.T, app *fiber.App) (string, model.ResumeData) {
	t.Helper()
	resp, body := do(t, app, jsonReq(http.MethodPost, "/sessions", nil))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var out struct {
		ID   string           `json:"id"`
		Data model.ResumeData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	return out.ID, out.Data
}

func errorMessage(t *testing.T, body []byte) string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.Unmarshal(body, &out))
	return out["error"]
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 40))))
	return buf.Bytes()
}

func TestHealth(t *testing.T) {
	resp, _ := do(t, newTestApp(t, nil), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSessionLifecycle(t *testing.T) {
	app := newTestApp(t, nil)
	id, data := createSession(t, app)
	assert.Equal(t, "JOHN DOE", data.PersonalDetails.Name)

	resp, body := do(t, app, jsonReq(http.MethodPatch, "/sessions/"+id+"/personal", fieldReq{Field: "name", Value: "Jane Roe"}))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got model.ResumeData
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "Jane Roe", got.PersonalDetails.Name)

	resp, _ = do(t, app, httptest.NewRequest(http.MethodDelete, "/sessions/"+id, nil))
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, body = do(t, app, httptest.NewRequest(http.MethodGet, "/sessions/"+id, nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Session not found.", errorMessage(t, body))
}

func TestSectionItems(t *testing.T) {
	app := newTestApp(t, nil)
	id, _ := createSession(t, app)

	resp, body := do(t, app, jsonReq(http.MethodPost, "/sessions/"+id+"/sections/languages", nil))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var added struct {
		ID   string           `json:"id"`
		Data model.ResumeData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &added))
	require.Len(t, added.Data.Languages, 1)

	path := "/sessions/" + id + "/sections/languages/" + added.ID
	resp, body = do(t, app, jsonReq(http.MethodPatch, path, fieldReq{Field: "language", Value: "French"}))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got model.ResumeData
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "French", got.Languages[0].Language)

	resp, _ = do(t, app, jsonReq(http.MethodPatch, path, fieldReq{Field: "id", Value: "x"}))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, httptest.NewRequest(http.MethodDelete, path, nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = do(t, app, httptest.NewRequest(http.MethodDelete, path, nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, app, jsonReq(http.MethodPost, "/sessions/"+id+"/sections/hobbies", nil))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestEnhanceRoute(t *testing.T) {
	app := newTestApp(t, nil)
	id, data := createSession(t, app)
	item := data.Projects[0].ID

	resp, body := do(t, app, httptest.NewRequest(http.MethodPost, "/sessions/"+id+"/sections/projects/"+item+"/enhance", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got model.ResumeData
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "Sharper.", got.Projects[0].Description)

	resp, body = do(t, app, httptest.NewRequest(http.MethodGet, "/sessions/"+id+"/enhancements", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"inFlight": []}`, string(body))
}

func TestImportRoute(t *testing.T) {
	app := newTestApp(t, []string{strings.Repeat("Resume text with content. ", 4)})
	id, _ := createSession(t, app)

	resp, body := do(t, app, multipartReq(t, "/sessions/"+id+"/import", "text/plain", []byte("hi"), nil))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, usecase.MsgInvalidPDF, errorMessage(t, body))

	resp, body = do(t, app, multipartReq(t, "/sessions/"+id+"/import", "application/pdf", []byte("%PDF-1.4"), nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got model.ResumeData
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "Imported.", got.Summary)
	assert.Equal(t, "JOHN DOE", got.PersonalDetails.Name)
	assert.Empty(t, got.Education)
	assert.Len(t, got.Activities, 3)
}

func TestImportRouteLowText(t *testing.T) {
	app := newTestApp(t, []string{"short"})
	id, _ := createSession(t, app)

	resp, body := do(t, app, multipartReq(t, "/sessions/"+id+"/import", "application/pdf", []byte("%PDF-1.4"), nil))
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, usecase.MsgLowText, errorMessage(t, body))
}

func TestExportNeedsImagesThenSucceeds(t *testing.T) {
	app := newTestApp(t, nil)
	id, _ := createSession(t, app)

	resp, body := do(t, app, httptest.NewRequest(http.MethodPost, "/sessions/"+id+"/export", nil))
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, usecase.MsgMissingBoth, errorMessage(t, body))

	resp, body = do(t, app, httptest.NewRequest(http.MethodGet, "/sessions/"+id+"/notice", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message": "`+usecase.MsgMissingBoth+`"}`, string(body))

	resp, body = do(t, app, multipartReq(t, "/sessions/"+id+"/images/photo/initial-crop", "image/png", testPNG(t), nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var initial struct {
		Width  int                `json:"width"`
		Region usecase.CropRegion `json:"region"`
	}
	require.NoError(t, json.Unmarshal(body, &initial))
	assert.Equal(t, 40, initial.Width)

	for _, kind := range []string{"photo", "logo"} {
		resp, body = do(t, app, multipartReq(t, "/sessions/"+id+"/images/"+kind, "image/png", testPNG(t),
			map[string]string{"x": "5", "y": "5", "width": "90", "height": "90", "pixelRatio": "2"}))
		require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	}

	resp, body = do(t, app, httptest.NewRequest(http.MethodPost, "/sessions/"+id+"/export", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "JOHN_DOE_Resume.pdf")
	assert.Equal(t, "2", resp.Header.Get("X-Page-Count"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestCropWithoutRegion(t *testing.T) {
	app := newTestApp(t, nil)
	id, _ := createSession(t, app)

	resp, body := do(t, app, multipartReq(t, "/sessions/"+id+"/images/logo", "image/png", testPNG(t), nil))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, usecase.MsgNoCropRegion, errorMessage(t, body))
}

func TestPreviewRoute(t *testing.T) {
	app := newTestApp(t, nil)
	id, _ := createSession(t, app)

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/sessions/"+id+"/preview", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), "JOHN DOE")
	assert.Contains(t, string(body), "resume-page-container")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, fiber.StatusConflict, statusFor(&usecase.OperationError{Kind: usecase.ErrEnhancementInFlight}))
	assert.Equal(t, fiber.StatusBadGateway, statusFor(&usecase.OperationError{Kind: usecase.ErrService}))
	assert.Equal(t, fiber.StatusInternalServerError, statusFor(&usecase.OperationError{Kind: usecase.ErrCapture}))
	assert.Equal(t, fiber.StatusInternalServerError, statusFor(assert.AnError))
}
