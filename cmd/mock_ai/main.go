// Command mock_ai serves a canned /v1/chat endpoint so the server can run
// with AI_BACKEND=service and no real model behind it.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"resume-builder/internal/logger"
)

var extraction = map[string]interface{}{
	"personalDetails": map[string]interface{}{
		"name": "Test User", "degree": "B.Sc Computer Science", "gender": nil, "dob": nil,
		"email": "test.user@example.com", "contact": "+1-555-0100", "linkedin": nil, "github": nil,
	},
	"summary": "Backend engineer focused on data pipelines.",
	"education": []map[string]interface{}{
		{"year": "2020-2024", "degree": "B.Sc Computer Science", "institution": "State University", "grade": "3.8"},
	},
	"internships": []map[string]interface{}{
		{"title": "Software Intern at Acme", "date": "Jun 2023 - Aug 2023", "description": "Built an ingestion service in Go."},
	},
	"projects": []map[string]interface{}{
		{"name": "Pipeline", "date": "2024", "description": "Streaming ETL\nCut latency by half"},
	},
	"skills": []map[string]interface{}{
		{"category": "Programming Languages", "skills": "Go, Python"},
	},
	"activities": []map[string]interface{}{
		{"title": "Social Work", "description": "Tutored students"},
		{"title": "Extracurricular Activities", "description": "Chess club"},
	},
	"webLinks": []map[string]interface{}{
		{"name": "Github", "url": "https://github.com/test-user"},
	},
}

type chatRequest struct {
	Agent string `json:"agent"`
	Input string `json:"input"`
}

func chat(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	var req chatRequest
	if err := json.Unmarshal(body, &req); err != nil || req.Input == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var output string
	if strings.Contains(req.Input, "JSON-SCHEMA:") {
		b, _ := json.Marshal(extraction)
		output = "```json\n" + string(b) + "\n```"
	} else {
		output = "Delivered measurable results by streamlining the work described."
	}
	logger.Info().Int("input_chars", len(req.Input)).Bool("structured", strings.Contains(req.Input, "JSON-SCHEMA:")).Msg("chat")

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"agent": "mock", "output": output})
}

func main() {
	addr := pflag.String("addr", ":8000", "listen address")
	pflag.Parse()
	logger.Init(logger.Config{Level: "info", Format: "pretty"})

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat", chat)
	srv := &http.Server{Addr: *addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		logger.Info().Str("addr", *addr).Msg("mock ai listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("mock ai server failed")
		}
	}()
	<-ctx.Done()
	_ = srv.Shutdown(context.Background())
}
