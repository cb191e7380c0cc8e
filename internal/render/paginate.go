package render

import (
	"html/template"
	"regexp"
	"unicode/utf8"
)

// Height estimates in CSS pixels for one A4 panel at 96dpi, margins removed.
const (
	pageBudget     = 1020
	headerHeight   = 190
	sectionHeading = 42
	entryGap       = 10
	headLine       = 22
	lineHeight     = 18
	charsPerLine   = 95
)

var (
	tagRe = regexp.MustCompile(`<[^>]*>`)
	brRe  = regexp.MustCompile(`<br>`)
)

func textLines(h template.HTML) int {
	plain := tagRe.ReplaceAllString(string(h), "")
	n := utf8.RuneCountInString(plain)
	lines := (n + charsPerLine - 1) / charsPerLine
	if lines < 1 {
		lines = 1
	}
	return lines + len(brRe.FindAllStringIndex(string(h), -1))
}

func entryHeight(e entry) int {
	h := entryGap
	if e.Title != "" || e.Date != "" {
		h += headLine
	}
	if e.Subtitle != "" {
		h += lineHeight
	}
	if e.Link != "" {
		h += lineHeight
	}
	if len(e.Bullets) > 0 {
		for _, b := range e.Bullets {
			h += textLines(b) * lineHeight
		}
	} else if e.Body != "" {
		h += textLines(e.Body) * lineHeight
	}
	return h
}

// paginate lays sections onto fixed-size pages in order. A section that does
// not fit breaks between entries and continues under a repeated heading on
// the next page; an entry is never split. The first page always exists and
// carries the header.
func paginate(sections []section) []page {
	pages := []page{{Number: 1, First: true}}
	used := headerHeight

	newPage := func() {
		pages = append(pages, page{Number: len(pages) + 1})
		used = 0
	}

	for _, s := range sections {
		rest := s.Entries
		continued := false
		for len(rest) > 0 {
			cur := &pages[len(pages)-1]
			room := pageBudget - used - sectionHeading
			n, h := 0, 0
			for n < len(rest) && h+entryHeight(rest[n]) <= room {
				h += entryHeight(rest[n])
				n++
			}
			if n == 0 {
				if len(cur.Sections) > 0 || cur.First {
					newPage()
					continue
				}
				// a lone entry taller than a page still gets placed
				n, h = 1, entryHeight(rest[0])
			}
			cur.Sections = append(cur.Sections, section{
				Key:       s.Key,
				Title:     s.Title,
				Continued: continued,
				Entries:   rest[:n],
			})
			used += sectionHeading + h
			rest = rest[n:]
			continued = true
			if len(rest) > 0 {
				newPage()
			}
		}
	}
	return pages
}
