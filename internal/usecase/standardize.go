package usecase

import (
	"strings"

	"resume-builder/internal/model"
)

var canonicalActivities = []string{"Social Activities", "Cultural Activities", "Sports Activities"}

const extracurricularTitle = "EXTRACURRICULAR ACTIVITIES"

// StandardizeActivities maps free-form extracted activities onto the
// canonical categories. Each canonical title takes the description of an
// exact title match, else of the first activity whose title contains the
// title's first word (case-insensitive), else "". An activity titled with
// "extra" is appended as a fourth extracurricular record.
//
// The first-word rule can pair unrelated entries sharing a word; it is kept
// as is.
func StandardizeActivities(in []model.Activity, ids model.IDGenerator) []model.Activity {
	out := make([]model.Activity, 0, len(canonicalActivities)+1)
	for _, title := range canonicalActivities {
		desc := ""
		if a, ok := matchActivity(in, title); ok {
			desc = a.Description
		}
		out = append(out, model.Activity{ID: ids.NewID(), Title: title, Description: desc})
	}
	for _, a := range in {
		if strings.Contains(strings.ToLower(a.Title), "extra") {
			out = append(out, model.Activity{ID: ids.NewID(), Title: extracurricularTitle, Description: a.Description})
			break
		}
	}
	return out
}

func matchActivity(in []model.Activity, title string) (model.Activity, bool) {
	for _, a := range in {
		if a.Title == title {
			return a, true
		}
	}
	word := strings.ToLower(strings.Fields(title)[0])
	for _, a := range in {
		if strings.Contains(strings.ToLower(a.Title), word) {
			return a, true
		}
	}
	return model.Activity{}, false
}
