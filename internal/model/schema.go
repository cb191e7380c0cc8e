package model

import "resume-builder/pkg/ai"

var personalFields = []string{"name", "degree", "gender", "dob", "email", "contact", "linkedin", "github"}

// ExtractionSchema is the output schema requested from structured
// extraction. Every leaf is a nullable string and ids are never requested.
// personalDetails, the lists and their items may also be null; a null list
// decodes to an empty one. Images are not part of the schema.
func ExtractionSchema() *ai.Schema {
	personal := map[string]*ai.Schema{}
	for _, f := range personalFields {
		personal[f] = ai.String(true)
	}
	props := map[string]*ai.Schema{
		"personalDetails": ai.Nullable(ai.Object(personal)),
		"summary":         ai.String(true),
	}
	for _, s := range Sections() {
		item := map[string]*ai.Schema{}
		for _, f := range s.Fields() {
			item[f] = ai.String(true)
		}
		props[string(s)] = ai.Nullable(ai.ArrayOf(ai.Nullable(ai.Object(item))))
	}
	return ai.Object(props)
}
