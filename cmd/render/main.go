// Command render writes the preview HTML for a resume JSON file, or for the
// default template when no input is given. With --pdf it also runs the
// export pipeline against headless Chrome.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"resume-builder/internal/adapter/repository"
	"resume-builder/internal/domain"
	"resume-builder/internal/logger"
	"resume-builder/internal/model"
	"resume-builder/internal/render"
	"resume-builder/internal/usecase"
	infra "resume-builder/pkg/infrastructure"
)

func main() {
	in := pflag.StringP("in", "i", "", "resume JSON file (default template when empty)")
	out := pflag.StringP("out", "o", "resume.html", "output HTML file")
	pdfOut := pflag.String("pdf", "", "also export a PDF to this path")
	chromePath := pflag.String("chrome", os.Getenv("CHROME_PATH"), "chrome executable")
	scale := pflag.Float64("scale", usecase.DefaultCaptureScale, "capture scale")
	pflag.Parse()
	logger.Init(logger.Config{Level: "info", Format: "pretty"})

	data := model.Default(model.UUIDGenerator{})
	if *in != "" {
		b, err := os.ReadFile(*in)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read resume: %v\n", err)
			os.Exit(2)
		}
		if err := json.Unmarshal(b, &data); err != nil {
			fmt.Fprintf(os.Stderr, "unmarshal: %v\n", err)
			os.Exit(2)
		}
	}

	r, err := render.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse templates: %v\n", err)
		os.Exit(2)
	}
	html, err := r.Render(data.Clone())
	if err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(2)
	}
	if err := os.WriteFile(*out, []byte(html), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", *out, err)
		os.Exit(2)
	}
	fmt.Printf("wrote %s\n", *out)

	if *pdfOut == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store := repository.NewSessionRepo(domain.DefaultNoticeDelay)
	s := store.Create(ctx, data)
	exporter := usecase.NewExporter(store, r,
		infra.NewChromedpCapturer(*chromePath, logger.Component("capture")),
		infra.NewFPDFAssembler(), *scale, logger.Component("export"))
	res, err := exporter.Export(ctx, s.ID.String())
	if err != nil {
		fmt.Fprintf(os.Stderr, "export: %s\n", usecase.UserMessage(err))
		os.Exit(1)
	}
	if err := os.WriteFile(*pdfOut, res.PDF, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", *pdfOut, err)
		os.Exit(2)
	}
	fmt.Printf("wrote %s (%d pages)\n", *pdfOut, res.Pages)
}
