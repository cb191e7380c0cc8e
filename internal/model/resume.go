package model

import "strings"

// Placeholder images used by the default template. Export is blocked while
// either image field still points at the placeholder host.
const (
	PlaceholderHost  = "via.placeholder.com"
	PlaceholderPhoto = "https://via.placeholder.com/130x140.png?text="
	PlaceholderLogo  = "https://via.placeholder.com/144x144.png?text="
)

// IsPlaceholder reports whether an image field still holds a placeholder.
func IsPlaceholder(v string) bool {
	return strings.Contains(v, PlaceholderHost)
}

type PersonalDetails struct {
	Name     string `json:"name"`
	Photo    string `json:"photo"`
	Degree   string `json:"degree"`
	Gender   string `json:"gender"`
	DOB      string `json:"dob"`
	Email    string `json:"email"`
	Contact  string `json:"contact"`
	Logo     string `json:"logo"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

func (p *PersonalDetails) fieldRef(name string) *string {
	switch name {
	case "name":
		return &p.Name
	case "photo":
		return &p.Photo
	case "degree":
		return &p.Degree
	case "gender":
		return &p.Gender
	case "dob":
		return &p.DOB
	case "email":
		return &p.Email
	case "contact":
		return &p.Contact
	case "logo":
		return &p.Logo
	case "linkedin":
		return &p.LinkedIn
	case "github":
		return &p.GitHub
	}
	return nil
}

type Education struct {
	ID          string `json:"id"`
	Year        string `json:"year"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Grade       string `json:"grade"`
}

func (e *Education) fieldRef(name string) *string {
	switch name {
	case "id":
		return &e.ID
	case "year":
		return &e.Year
	case "degree":
		return &e.Degree
	case "institution":
		return &e.Institution
	case "grade":
		return &e.Grade
	}
	return nil
}

type Internship struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

func (i *Internship) fieldRef(name string) *string {
	switch name {
	case "id":
		return &i.ID
	case "title":
		return &i.Title
	case "date":
		return &i.Date
	case "description":
		return &i.Description
	}
	return nil
}

type Achievement struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

func (a *Achievement) fieldRef(name string) *string {
	switch name {
	case "id":
		return &a.ID
	case "description":
		return &a.Description
	}
	return nil
}

type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

func (p *Project) fieldRef(name string) *string {
	switch name {
	case "id":
		return &p.ID
	case "name":
		return &p.Name
	case "date":
		return &p.Date
	case "description":
		return &p.Description
	}
	return nil
}

type Skill struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Skills   string `json:"skills"`
}

func (s *Skill) fieldRef(name string) *string {
	switch name {
	case "id":
		return &s.ID
	case "category":
		return &s.Category
	case "skills":
		return &s.Skills
	}
	return nil
}

type Position struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

func (p *Position) fieldRef(name string) *string {
	switch name {
	case "id":
		return &p.ID
	case "title":
		return &p.Title
	case "date":
		return &p.Date
	case "description":
		return &p.Description
	}
	return nil
}

type Activity struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (a *Activity) fieldRef(name string) *string {
	switch name {
	case "id":
		return &a.ID
	case "title":
		return &a.Title
	case "description":
		return &a.Description
	}
	return nil
}

type Language struct {
	ID          string `json:"id"`
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

func (l *Language) fieldRef(name string) *string {
	switch name {
	case "id":
		return &l.ID
	case "language":
		return &l.Language
	case "proficiency":
		return &l.Proficiency
	}
	return nil
}

type WebLink struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (w *WebLink) fieldRef(name string) *string {
	switch name {
	case "id":
		return &w.ID
	case "name":
		return &w.Name
	case "url":
		return &w.URL
	}
	return nil
}

type Coursework struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Subjects string `json:"subjects"`
}

func (c *Coursework) fieldRef(name string) *string {
	switch name {
	case "id":
		return &c.ID
	case "category":
		return &c.Category
	case "subjects":
		return &c.Subjects
	}
	return nil
}

type TechnicalAchievement struct {
	ID    string `json:"id"`
	Year  string `json:"year"`
	Rank  string `json:"rank"`
	Event string `json:"event"`
}

func (t *TechnicalAchievement) fieldRef(name string) *string {
	switch name {
	case "id":
		return &t.ID
	case "year":
		return &t.Year
	case "rank":
		return &t.Rank
	case "event":
		return &t.Event
	}
	return nil
}

// ResumeData is the whole resume held by one session.
type ResumeData struct {
	PersonalDetails       PersonalDetails        `json:"personalDetails"`
	Summary               string                 `json:"summary"`
	Education             []Education            `json:"education"`
	Internships           []Internship           `json:"internships"`
	Achievements          []Achievement          `json:"achievements"`
	Projects              []Project              `json:"projects"`
	Skills                []Skill                `json:"skills"`
	Positions             []Position             `json:"positions"`
	Activities            []Activity             `json:"activities"`
	Languages             []Language             `json:"languages"`
	WebLinks              []WebLink              `json:"webLinks"`
	Coursework            []Coursework           `json:"coursework"`
	TechnicalAchievements []TechnicalAchievement `json:"technicalAchievements"`
}

// Clone returns a copy that shares no list storage with d. Nil lists come
// back empty so the JSON form always carries arrays.
func (d ResumeData) Clone() ResumeData {
	out := d
	out.Education = cloneList(d.Education)
	out.Internships = cloneList(d.Internships)
	out.Achievements = cloneList(d.Achievements)
	out.Projects = cloneList(d.Projects)
	out.Skills = cloneList(d.Skills)
	out.Positions = cloneList(d.Positions)
	out.Activities = cloneList(d.Activities)
	out.Languages = cloneList(d.Languages)
	out.WebLinks = cloneList(d.WebLinks)
	out.Coursework = cloneList(d.Coursework)
	out.TechnicalAchievements = cloneList(d.TechnicalAchievements)
	return out
}

func cloneList[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
