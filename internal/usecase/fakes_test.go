package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"resume-builder/internal/adapter/repository"
	"resume-builder/internal/model"
)

var nopLog = zerolog.Nop()

func newStore() *repository.SessionRepo {
	return repository.NewSessionRepo(time.Second)
}

type fakeExtractor struct {
	pages []string
	err   error
	calls int
}

func (f *fakeExtractor) Pages(context.Context, []byte) ([]string, error) {
	f.calls++
	return f.pages, f.err
}

type fakeStructurer struct {
	out   string
	err   error
	calls int
}

func (f *fakeStructurer) Format(context.Context, string) (string, error) {
	f.calls++
	return f.out, f.err
}

// fakeRewriter blocks on gate when set so tests can hold a request in flight.
type fakeRewriter struct {
	mu      sync.Mutex
	out     string
	err     error
	calls   int
	gate    chan struct{}
	started chan struct{}
}

func (f *fakeRewriter) Format(ctx context.Context, description string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.out, f.err
}

func (f *fakeRewriter) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeRenderer struct{}

func (fakeRenderer) Render(d model.ResumeData) (string, error) {
	return "<html>" + d.PersonalDetails.Name + "</html>", nil
}

type fakeCapturer struct {
	panels  int
	failAt  int // 1-based; 0 never fails
	openErr error
	order   []int
	closed  int
}

func (f *fakeCapturer) Open(context.Context, string) (CaptureSession, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return &fakeCaptureSession{f: f}, nil
}

type fakeCaptureSession struct{ f *fakeCapturer }

func (s *fakeCaptureSession) PanelCount() int { return s.f.panels }

func (s *fakeCaptureSession) CapturePanel(_ context.Context, i int, scale float64) ([]byte, error) {
	if s.f.failAt == i+1 {
		return nil, errors.New("rasterize failed")
	}
	s.f.order = append(s.f.order, i)
	return []byte("png-" + string(rune('0'+i))), nil
}

func (s *fakeCaptureSession) Close() error {
	s.f.closed++
	return nil
}

// recordingAssembler keeps every document it creates.
type recordingAssembler struct {
	docs []*recordingDoc
}

func (a *recordingAssembler) NewDocument() Document {
	d := &recordingDoc{pages: [][]string{{}}}
	a.docs = append(a.docs, d)
	return d
}

type recordingDoc struct {
	pages [][]string
}

func (d *recordingDoc) AddPage() { d.pages = append(d.pages, []string{}) }

func (d *recordingDoc) PlaceFullPageImage(png []byte) error {
	last := len(d.pages) - 1
	d.pages[last] = append(d.pages[last], string(png))
	return nil
}

func (d *recordingDoc) PageCount() int { return len(d.pages) }

func (d *recordingDoc) Bytes() ([]byte, error) {
	var parts []string
	for _, p := range d.pages {
		parts = append(parts, strings.Join(p, "+"))
	}
	return []byte("%PDF|" + strings.Join(parts, "|")), nil
}
