package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"resume-builder/internal/model"
)

//go:embed templates/*.html templates/style.css
var templateFS embed.FS

// PanelSelector matches one rendered page panel.
const PanelSelector = ".resume-page-container"

// Renderer turns a ResumeData into the paginated preview document. It holds
// no per-call state and is safe for concurrent use.
type Renderer struct {
	tpl *template.Template
	css template.CSS
}

func New() (*Renderer, error) {
	tpl, err := template.New("resume.html").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	css, err := templateFS.ReadFile("templates/style.css")
	if err != nil {
		return nil, fmt.Errorf("read stylesheet: %w", err)
	}
	return &Renderer{tpl: tpl, css: template.CSS(css)}, nil
}

type entry struct {
	Title     string
	Subtitle  string
	Date      string
	Link      string
	LinkLabel string
	Body      template.HTML
	Bullets   []template.HTML
}

type section struct {
	Key       string
	Title     string
	Continued bool
	Entries   []entry
}

type page struct {
	Number   int
	First    bool
	Sections []section
}

type document struct {
	Personal model.PersonalDetails
	Photo    template.URL
	Logo     template.URL
	CSS      template.CSS
	Pages    []page
}

// Render produces the full HTML document. Output depends only on data.
func (r *Renderer) Render(data model.ResumeData) (string, error) {
	doc := document{
		Personal: data.PersonalDetails,
		Photo:    template.URL(data.PersonalDetails.Photo),
		Logo:     template.URL(data.PersonalDetails.Logo),
		CSS:      r.css,
		Pages:    paginate(buildSections(data)),
	}
	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, "resume.html", doc); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

func buildSections(d model.ResumeData) []section {
	var out []section
	add := func(key, title string, entries []entry) {
		if len(entries) > 0 {
			out = append(out, section{Key: key, Title: title, Entries: entries})
		}
	}

	if strings.TrimSpace(d.Summary) != "" {
		add("summary", "Professional Summary", []entry{{Body: inline(d.Summary)}})
	}
	add(string(model.SectionEducation), "Education", mapEntries(d.Education, func(e model.Education) entry {
		body := template.HTML("")
		if e.Grade != "" {
			body = template.HTML(template.HTMLEscapeString("Grade: " + e.Grade))
		}
		return entry{Title: e.Degree, Subtitle: e.Institution, Date: e.Year, Body: body}
	}))
	add(string(model.SectionInternships), "Experience", mapEntries(d.Internships, func(i model.Internship) entry {
		return described(entry{Title: i.Title, Date: i.Date}, i.Description)
	}))
	add(string(model.SectionProjects), "Projects", mapEntries(d.Projects, func(p model.Project) entry {
		return described(entry{Title: p.Name, Date: p.Date}, p.Description)
	}))
	add(string(model.SectionSkills), "Skills", mapEntries(d.Skills, func(s model.Skill) entry {
		return entry{Title: s.Category, Body: inline(s.Skills)}
	}))
	add(string(model.SectionPositions), "Positions of Responsibility", mapEntries(d.Positions, func(p model.Position) entry {
		return described(entry{Title: p.Title, Date: p.Date}, p.Description)
	}))
	add(string(model.SectionAchievements), "Achievements", mapEntries(d.Achievements, func(a model.Achievement) entry {
		return entry{Body: inline(a.Description)}
	}))
	add(string(model.SectionTechnicalAchievements), "Technical Achievements", mapEntries(d.TechnicalAchievements, func(t model.TechnicalAchievement) entry {
		return entry{Title: t.Event, Subtitle: t.Rank, Date: t.Year}
	}))
	add(string(model.SectionActivities), "Activities", mapEntries(d.Activities, func(a model.Activity) entry {
		return described(entry{Title: a.Title}, a.Description)
	}))
	add(string(model.SectionCoursework), "Coursework", mapEntries(d.Coursework, func(c model.Coursework) entry {
		return entry{Title: c.Category, Body: inline(c.Subjects)}
	}))
	add(string(model.SectionLanguages), "Languages", mapEntries(d.Languages, func(l model.Language) entry {
		return entry{Title: l.Language, Subtitle: l.Proficiency}
	}))
	add(string(model.SectionWebLinks), "Links", mapEntries(d.WebLinks, func(w model.WebLink) entry {
		return entry{Link: linkHref(w.URL), LinkLabel: linkLabel(w)}
	}))
	return out
}

func mapEntries[T any](items []T, fn func(T) entry) []entry {
	out := make([]entry, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return out
}

// described fills the body of a list-like record: a description spanning
// several lines becomes bullets, a single line stays a paragraph.
func described(e entry, description string) entry {
	if strings.Contains(description, "\n") {
		e.Bullets = bullets(description)
		if len(e.Bullets) > 0 {
			return e
		}
	}
	e.Body = inline(description)
	return e
}

// inline applies the markup allowance: <b> becomes <strong> and newlines
// become line breaks. Everything else passes through untouched.
func inline(s string) template.HTML {
	s = strings.ReplaceAll(s, "<b>", "<strong>")
	s = strings.ReplaceAll(s, "</b>", "</strong>")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\n", "<br>")
	return template.HTML(s)
}

func bullets(s string) []template.HTML {
	var out []template.HTML
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, inline(line))
	}
	return out
}

func linkHref(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.Contains(raw, "://") {
		return raw
	}
	return "https://" + raw
}

// linkLabel prefers the link's name and falls back to the registrable
// domain of its URL.
func linkLabel(w model.WebLink) string {
	if name := strings.TrimSpace(w.Name); name != "" {
		return name
	}
	parsed, err := url.Parse(linkHref(w.URL))
	if err != nil {
		return w.URL
	}
	host := parsed.Hostname()
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return strings.TrimPrefix(etld, "www.")
	}
	if host == "" {
		return w.URL
	}
	return strings.TrimPrefix(host, "www.")
}
