package http

import (
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"resume-builder/internal/usecase"
)

type Handler struct {
	editor   *usecase.Editor
	importer *usecase.Importer
	enhancer *usecase.Enhancer
	exporter *usecase.Exporter
	log      zerolog.Logger
}

func NewHandler(editor *usecase.Editor, importer *usecase.Importer, enhancer *usecase.Enhancer, exporter *usecase.Exporter, log zerolog.Logger) *Handler {
	return &Handler{editor: editor, importer: importer, enhancer: enhancer, exporter: exporter, log: log}
}

// Register mounts every route on r.
func (h *Handler) Register(r fiber.Router) {
	r.Get("/healthz", h.Health)

	s := r.Group("/sessions")
	s.Post("/", h.CreateSession)
	s.Get("/:id", h.GetSession)
	s.Delete("/:id", h.EndSession)
	s.Patch("/:id/personal", h.UpdatePersonal)
	s.Put("/:id/summary", h.UpdateSummary)
	s.Post("/:id/sections/:section", h.AddItem)
	s.Patch("/:id/sections/:section/:itemId", h.UpdateItem)
	s.Delete("/:id/sections/:section/:itemId", h.RemoveItem)
	s.Post("/:id/sections/:section/:itemId/enhance", h.Enhance)
	s.Get("/:id/enhancements", h.Enhancements)
	s.Post("/:id/import", h.Import)
	s.Post("/:id/images/:kind/initial-crop", h.InitialCrop)
	s.Post("/:id/images/:kind", h.CropImage)
	s.Get("/:id/preview", h.Preview)
	s.Post("/:id/export", h.Export)
	s.Get("/:id/notice", h.Notice)
}

// statusFor maps an operation error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, usecase.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, usecase.ErrEnhancementInFlight):
		return fiber.StatusConflict
	case errors.Is(err, usecase.ErrExtraction), errors.Is(err, usecase.ErrExportPrecondition):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, usecase.ErrService):
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	msg := usecase.UserMessage(err)
	var oe *usecase.OperationError
	if !errors.As(err, &oe) {
		msg = "Something went wrong. Please try again."
	}
	ev := h.log.Warn()
	if status >= fiber.StatusInternalServerError {
		ev = h.log.Error()
	}
	ev.Err(err).Int("status", status).Str("path", c.Path()).Msg("request failed")
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) CreateSession(c *fiber.Ctx) error {
	s := h.editor.CreateSession(c.UserContext())
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": s.ID.String(), "data": s.Data()})
}

func (h *Handler) GetSession(c *fiber.Ctx) error {
	d, err := h.editor.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(d)
}

func (h *Handler) EndSession(c *fiber.Ctx) error {
	if err := h.editor.EndSession(c.UserContext(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type fieldReq struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (h *Handler) UpdatePersonal(c *fiber.Ctx) error {
	var req fieldReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	d, err := h.editor.UpdatePersonal(c.UserContext(), c.Params("id"), req.Field, req.Value)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(d)
}

func (h *Handler) UpdateSummary(c *fiber.Ctx) error {
	var req fieldReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	d, err := h.editor.UpdateSummary(c.UserContext(), c.Params("id"), req.Value)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(d)
}

func (h *Handler) AddItem(c *fiber.Ctx) error {
	d, id, err := h.editor.AddItem(c.UserContext(), c.Params("id"), c.Params("section"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id, "data": d})
}

func (h *Handler) UpdateItem(c *fiber.Ctx) error {
	var req fieldReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	d, err := h.editor.UpdateItem(c.UserContext(), c.Params("id"), c.Params("section"), c.Params("itemId"), req.Field, req.Value)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(d)
}

func (h *Handler) RemoveItem(c *fiber.Ctx) error {
	d, err := h.editor.RemoveItem(c.UserContext(), c.Params("id"), c.Params("section"), c.Params("itemId"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(d)
}

func (h *Handler) Enhance(c *fiber.Ctx) error {
	d, err := h.enhancer.Enhance(c.UserContext(), c.Params("id"), c.Params("section"), c.Params("itemId"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(d)
}

func (h *Handler) Enhancements(c *fiber.Ctx) error {
	if _, err := h.editor.Get(c.UserContext(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"inFlight": h.enhancer.InFlight(c.Params("id"))})
}

// readUpload returns the bytes and declared content type of the multipart
// "file" field.
func readUpload(c *fiber.Ctx) ([]byte, string, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, "", err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	return b, fh.Header.Get(fiber.HeaderContentType), nil
}

func (h *Handler) Import(c *fiber.Ctx) error {
	raw, contentType, err := readUpload(c)
	if err != nil {
		return badRequest(c, usecase.MsgInvalidPDF)
	}
	d, err := h.importer.Import(c.UserContext(), c.Params("id"), contentType, raw)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(d)
}

func (h *Handler) InitialCrop(c *fiber.Ctx) error {
	kind, err := usecase.ParseCropKind(c.Params("kind"))
	if err != nil {
		return h.fail(c, err)
	}
	raw, _, err := readUpload(c)
	if err != nil {
		return badRequest(c, usecase.MsgUnsupportedImage)
	}
	w, hgt, err := usecase.ImageSize(raw)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"width":  w,
		"height": hgt,
		"aspect": kind.Aspect(),
		"region": usecase.InitialCrop(w, hgt, kind.Aspect()),
	})
}

// cropRegion reads x, y, width and height form values. Any missing value
// means no region was confirmed.
func cropRegion(c *fiber.Ctx) (*usecase.CropRegion, error) {
	var vals [4]float64
	for i, k := range []string{"x", "y", "width", "height"} {
		s := c.FormValue(k)
		if s == "" {
			return nil, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return &usecase.CropRegion{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}

func (h *Handler) CropImage(c *fiber.Ctx) error {
	kind, err := usecase.ParseCropKind(c.Params("kind"))
	if err != nil {
		return h.fail(c, err)
	}
	raw, _, err := readUpload(c)
	if err != nil {
		return badRequest(c, usecase.MsgUnsupportedImage)
	}
	region, err := cropRegion(c)
	if err != nil {
		return badRequest(c, usecase.MsgNoCropRegion)
	}
	ratio := 1.0
	if s := c.FormValue("pixelRatio"); s != "" {
		if ratio, err = strconv.ParseFloat(s, 64); err != nil {
			return badRequest(c, "invalid pixelRatio")
		}
	}
	d, err := h.editor.CropImage(c.UserContext(), c.Params("id"), kind, raw, region, ratio)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(d)
}

func (h *Handler) Preview(c *fiber.Ctx) error {
	html, err := h.exporter.Preview(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	c.Type("html", "utf-8")
	return c.SendString(html)
}

func (h *Handler) Export(c *fiber.Ctx) error {
	out, err := h.exporter.Export(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	c.Attachment(out.Filename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set("X-Page-Count", strconv.Itoa(out.Pages))
	return c.Send(out.PDF)
}

func (h *Handler) Notice(c *fiber.Ctx) error {
	msg, err := h.editor.Notice(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": msg})
}
