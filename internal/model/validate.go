package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidateExtraction checks a raw structured-extraction reply against
// ExtractionSchema.
func ValidateExtraction(raw []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(ExtractionSchema().JSONSchema())
	docLoader := gojsonschema.NewBytesLoader(raw)

	res, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}

// Extraction is a decoded structured-extraction reply. Personal details stay
// as pointers so an omitted key can be told apart from an explicit null.
type Extraction struct {
	PersonalDetails       map[string]*string     `json:"personalDetails"`
	Summary               *string                `json:"summary"`
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

// DecodeExtraction validates raw and decodes it. Null string fields decode
// to "".
func DecodeExtraction(raw []byte) (*Extraction, error) {
	if err := ValidateExtraction(raw); err != nil {
		return nil, err
	}
	var ex Extraction
	if err := json.Unmarshal(raw, &ex); err != nil {
		return nil, fmt.Errorf("decode extraction: %w", err)
	}
	return &ex, nil
}

// AssignIDs gives every extracted record a fresh id, replacing whatever id
// the model may have produced.
func (ex *Extraction) AssignIDs(ids IDGenerator) {
	for i := range ex.Education {
		ex.Education[i].ID = ids.NewID()
	}
	for i := range ex.Internships {
		ex.Internships[i].ID = ids.NewID()
	}
	for i := range ex.Achievements {
		ex.Achievements[i].ID = ids.NewID()
	}
	for i := range ex.Projects {
		ex.Projects[i].ID = ids.NewID()
	}
	for i := range ex.Skills {
		ex.Skills[i].ID = ids.NewID()
	}
	for i := range ex.Positions {
		ex.Positions[i].ID = ids.NewID()
	}
	for i := range ex.Activities {
		ex.Activities[i].ID = ids.NewID()
	}
	for i := range ex.Languages {
		ex.Languages[i].ID = ids.NewID()
	}
	for i := range ex.WebLinks {
		ex.WebLinks[i].ID = ids.NewID()
	}
	for i := range ex.Coursework {
		ex.Coursework[i].ID = ids.NewID()
	}
	for i := range ex.TechnicalAchievements {
		ex.TechnicalAchievements[i].ID = ids.NewID()
	}
}

// Merge builds the post-import aggregate on a fresh template. Personal
// fields the reply carries overwrite the template defaults (null becomes ""),
// omitted ones keep the defaults, and linkedin/github fall back to "".
// Photo and logo always come from prior.
func (ex *Extraction) Merge(prior ResumeData) ResumeData {
	out := ResumeData{PersonalDetails: DefaultPersonalDetails()}
	for _, f := range personalFields {
		v, ok := ex.PersonalDetails[f]
		if !ok {
			continue
		}
		ref := out.PersonalDetails.fieldRef(f)
		if v == nil {
			*ref = ""
		} else {
			*ref = *v
		}
	}
	out.PersonalDetails.Photo = prior.PersonalDetails.Photo
	out.PersonalDetails.Logo = prior.PersonalDetails.Logo

	if ex.Summary != nil {
		out.Summary = *ex.Summary
	}
	out.Education = ex.Education
	out.Internships = ex.Internships
	out.Achievements = ex.Achievements
	out.Projects = ex.Projects
	out.Skills = ex.Skills
	out.Positions = ex.Positions
	out.Activities = ex.Activities
	out.Languages = ex.Languages
	out.WebLinks = ex.WebLinks
	out.Coursework = ex.Coursework
	out.TechnicalAchievements = ex.TechnicalAchievements
	return out.Clone()
}
