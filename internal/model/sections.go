package model

import (
	"errors"
	"fmt"
)

// Section names one of the ordered record lists of ResumeData.
type Section string

const (
	SectionEducation             Section = "education"
	SectionInternships           Section = "internships"
	SectionAchievements          Section = "achievements"
	SectionProjects              Section = "projects"
	SectionSkills                Section = "skills"
	SectionPositions             Section = "positions"
	SectionActivities            Section = "activities"
	SectionLanguages             Section = "languages"
	SectionWebLinks              Section = "webLinks"
	SectionCoursework            Section = "coursework"
	SectionTechnicalAchievements Section = "technicalAchievements"
)

var (
	ErrUnknownSection = errors.New("unknown section")
	ErrUnknownField   = errors.New("unknown field")
	ErrItemNotFound   = errors.New("item not found")
	ErrDuplicateID    = errors.New("duplicate item id")
)

// Sections lists every section in rendering order.
func Sections() []Section {
	return []Section{
		SectionEducation, SectionInternships, SectionAchievements, SectionProjects,
		SectionSkills, SectionPositions, SectionActivities, SectionLanguages,
		SectionWebLinks, SectionCoursework, SectionTechnicalAchievements,
	}
}

// ParseSection maps a wire name to a Section.
func ParseSection(s string) (Section, error) {
	sec := Section(s)
	if _, ok := sectionTable[sec]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, s)
	}
	return sec, nil
}

// Fields returns the editable field names of the section's records, id excluded.
func (s Section) Fields() []string {
	ops, ok := sectionTable[s]
	if !ok {
		return nil
	}
	out := make([]string, len(ops.fields))
	copy(out, ops.fields)
	return out
}

// HasField reports whether records of the section carry the named field.
func (s Section) HasField(field string) bool {
	for _, f := range s.Fields() {
		if f == field {
			return true
		}
	}
	return false
}

type record[T any] interface {
	*T
	fieldRef(name string) *string
}

type sectionOps struct {
	fields []string
	ids    func(d *ResumeData) []string
	add    func(d *ResumeData, id string)
	get    func(d *ResumeData, id, field string) (string, error)
	set    func(d *ResumeData, id, field, value string) error
	remove func(d *ResumeData, id string) error
}

func opsFor[T any, P record[T]](fields []string, list func(*ResumeData) *[]T) sectionOps {
	validField := func(field string) bool {
		var probe T
		return field != "id" && P(&probe).fieldRef(field) != nil
	}
	find := func(d *ResumeData, id string) int {
		items := *list(d)
		for i := range items {
			if *P(&items[i]).fieldRef("id") == id {
				return i
			}
		}
		return -1
	}
	return sectionOps{
		fields: fields,
		ids: func(d *ResumeData) []string {
			items := *list(d)
			out := make([]string, 0, len(items))
			for i := range items {
				out = append(out, *P(&items[i]).fieldRef("id"))
			}
			return out
		},
		add: func(d *ResumeData, id string) {
			var item T
			*P(&item).fieldRef("id") = id
			*list(d) = append(*list(d), item)
		},
		get: func(d *ResumeData, id, field string) (string, error) {
			if !validField(field) {
				return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
			}
			i := find(d, id)
			if i < 0 {
				return "", fmt.Errorf("%w: %q", ErrItemNotFound, id)
			}
			return *P(&(*list(d))[i]).fieldRef(field), nil
		},
		set: func(d *ResumeData, id, field, value string) error {
			if !validField(field) {
				return fmt.Errorf("%w: %q", ErrUnknownField, field)
			}
			i := find(d, id)
			if i < 0 {
				return fmt.Errorf("%w: %q", ErrItemNotFound, id)
			}
			*P(&(*list(d))[i]).fieldRef(field) = value
			return nil
		},
		remove: func(d *ResumeData, id string) error {
			i := find(d, id)
			if i < 0 {
				return fmt.Errorf("%w: %q", ErrItemNotFound, id)
			}
			items := *list(d)
			*list(d) = append(items[:i:i], items[i+1:]...)
			return nil
		},
	}
}

var sectionTable = map[Section]sectionOps{
	SectionEducation: opsFor[Education]([]string{"year", "degree", "institution", "grade"},
		func(d *ResumeData) *[]Education { return &d.Education }),
	SectionInternships: opsFor[Internship]([]string{"title", "date", "description"},
		func(d *ResumeData) *[]Internship { return &d.Internships }),
	SectionAchievements: opsFor[Achievement]([]string{"description"},
		func(d *ResumeData) *[]Achievement { return &d.Achievements }),
	SectionProjects: opsFor[Project]([]string{"name", "date", "description"},
		func(d *ResumeData) *[]Project { return &d.Projects }),
	SectionSkills: opsFor[Skill]([]string{"category", "skills"},
		func(d *ResumeData) *[]Skill { return &d.Skills }),
	SectionPositions: opsFor[Position]([]string{"title", "date", "description"},
		func(d *ResumeData) *[]Position { return &d.Positions }),
	SectionActivities: opsFor[Activity]([]string{"title", "description"},
		func(d *ResumeData) *[]Activity { return &d.Activities }),
	SectionLanguages: opsFor[Language]([]string{"language", "proficiency"},
		func(d *ResumeData) *[]Language { return &d.Languages }),
	SectionWebLinks: opsFor[WebLink]([]string{"name", "url"},
		func(d *ResumeData) *[]WebLink { return &d.WebLinks }),
	SectionCoursework: opsFor[Coursework]([]string{"category", "subjects"},
		func(d *ResumeData) *[]Coursework { return &d.Coursework }),
	SectionTechnicalAchievements: opsFor[TechnicalAchievement]([]string{"year", "rank", "event"},
		func(d *ResumeData) *[]TechnicalAchievement { return &d.TechnicalAchievements }),
}

func lookup(s Section) (sectionOps, error) {
	ops, ok := sectionTable[s]
	if !ok {
		return sectionOps{}, fmt.Errorf("%w: %q", ErrUnknownSection, s)
	}
	return ops, nil
}

// IDs returns the record ids of a section in list order.
func (d ResumeData) IDs(s Section) ([]string, error) {
	ops, err := lookup(s)
	if err != nil {
		return nil, err
	}
	return ops.ids(&d), nil
}

// ItemField reads one field of one record.
func (d ResumeData) ItemField(s Section, id, field string) (string, error) {
	ops, err := lookup(s)
	if err != nil {
		return "", err
	}
	return ops.get(&d, id, field)
}

// The reducers below never touch their input: each works on a Clone and
// returns the new aggregate.

func UpdatePersonal(d ResumeData, field, value string) (ResumeData, error) {
	out := d.Clone()
	ref := out.PersonalDetails.fieldRef(field)
	if ref == nil {
		return d, fmt.Errorf("%w: personalDetails.%s", ErrUnknownField, field)
	}
	*ref = value
	return out, nil
}

func UpdateSummary(d ResumeData, value string) ResumeData {
	out := d.Clone()
	out.Summary = value
	return out
}

// AddItem appends an empty record carrying id to the section.
func AddItem(d ResumeData, s Section, id string) (ResumeData, error) {
	ops, err := lookup(s)
	if err != nil {
		return d, err
	}
	if id == "" {
		return d, fmt.Errorf("%w: empty id", ErrUnknownField)
	}
	for _, existing := range ops.ids(&d) {
		if existing == id {
			return d, fmt.Errorf("%w: %q", ErrDuplicateID, id)
		}
	}
	out := d.Clone()
	ops.add(&out, id)
	return out, nil
}

func UpdateItem(d ResumeData, s Section, id, field, value string) (ResumeData, error) {
	ops, err := lookup(s)
	if err != nil {
		return d, err
	}
	out := d.Clone()
	if err := ops.set(&out, id, field, value); err != nil {
		return d, err
	}
	return out, nil
}

func RemoveItem(d ResumeData, s Section, id string) (ResumeData, error) {
	ops, err := lookup(s)
	if err != nil {
		return d, err
	}
	out := d.Clone()
	if err := ops.remove(&out, id); err != nil {
		return d, err
	}
	return out, nil
}
