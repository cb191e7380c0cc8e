package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/pflag"

	"resume-builder/internal/adapter/http"
	"resume-builder/internal/adapter/repository"
	"resume-builder/internal/config"
	"resume-builder/internal/logger"
	"resume-builder/internal/model"
	"resume-builder/internal/render"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/ai"
	"resume-builder/pkg/ai/formatters"
	infra "resume-builder/pkg/infrastructure"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to a YAML or JSON config file")
	port := pflag.StringP("port", "p", "", "listen port (overrides PORT)")
	pflag.Parse()
	if *configPath == "" {
		*configPath = os.Getenv("RESUME_CONFIG")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *port != "" {
		cfg.Port = *port
	}
	logger.Init(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen, closeGen, err := newGenerator(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("ai backend unavailable")
	}
	defer closeGen()

	extractor, err := newExtractor(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("pdf extractor unavailable")
	}

	renderer, err := render.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("load templates")
	}

	store := repository.NewSessionRepo(cfg.NoticeDelay)
	ids := model.UUIDGenerator{}

	editor := usecase.NewEditor(store, ids, logger.Component("editor"))
	importer := usecase.NewImporter(store, extractor,
		formatters.NewExtractionFormatter(gen, model.ExtractionSchema()), ids, logger.Component("import"))
	enhancer := usecase.NewEnhancer(store, formatters.NewEnhancementFormatter(gen), logger.Component("enhance"))
	exporter := usecase.NewExporter(store, renderer,
		infra.NewChromedpCapturer(cfg.ChromePath, logger.Component("capture")),
		infra.NewFPDFAssembler(), cfg.ExportScale, logger.Component("export"))

	app := fiber.New(fiber.Config{
		AppName:               "resume-builder",
		BodyLimit:             cfg.UploadMaxBytes,
		DisableStartupMessage: true,
	})
	http.Use(app, logger.Component("http"))
	http.NewHandler(editor, importer, enhancer, exporter, logger.Component("http")).Register(app)

	go func() {
		logger.Info().Str("port", cfg.Port).Str("ai_backend", cfg.AI.Backend).Str("pdf_extractor", cfg.PDFExtractor).Msg("server starting")
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}

func newGenerator(ctx context.Context, cfg *config.Config) (ai.Generator, func(), error) {
	switch cfg.AI.Backend {
	case config.BackendService:
		return ai.NewServiceGenerator(cfg.AI.ServiceURL, cfg.AI.Timeout, logger.Component("ai-service")), func() {}, nil
	default:
		g, err := ai.NewGeminiGenerator(ctx, cfg.AI.APIKey, cfg.AI.Model, logger.Component("gemini"))
		if err != nil {
			return nil, nil, err
		}
		return g, func() { _ = g.Close() }, nil
	}
}

func newExtractor(ctx context.Context, cfg *config.Config) (usecase.TextExtractor, error) {
	if cfg.PDFExtractor == config.ExtractorEino {
		return infra.NewEinoExtractor(ctx, logger.Component("pdf"))
	}
	return infra.NewLedongthucExtractor(), nil
}
