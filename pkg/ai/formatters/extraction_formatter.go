package formatters

import (
	"context"
	"strings"

	"resume-builder/pkg/ai"
)

const extractionInstructions = `You are an expert resume parser. Extract the information from the following resume text and return it as a JSON object that strictly follows the provided schema. If a field is not present, use null for strings and an empty array for lists.
- Consolidate all skills into categories such as "Programming Languages", "Frameworks/Libraries" and "Tools".
- Extract a professional summary into 'summary'.
- Extract spoken languages and their proficiency into 'languages'.
- Extract links to external profiles (Codechef, Github, LeetCode, portfolio sites and similar) into 'webLinks' with a name and url.
- Extract relevant coursework into 'coursework', categorized by degree or level.
- Extract ranked technical achievements such as hackathons and coding contests into 'technicalAchievements' as (Year, Rank/Position, Event Name).
- Standardize activities into exactly these titles where applicable: 'Social Activities', 'Cultural Activities', 'Sports Activities', 'Extracurricular Activities'. Merge related entries under the matching title and separate individual items in a description with a newline.`

// ExtractionFormatter asks the model to structure raw resume text.
type ExtractionFormatter struct {
	gen    ai.Generator
	schema *ai.Schema
}

func NewExtractionFormatter(gen ai.Generator, schema *ai.Schema) *ExtractionFormatter {
	return &ExtractionFormatter{gen: gen, schema: schema}
}

// Prompt builds the extraction prompt for text.
func (f *ExtractionFormatter) Prompt(text string) string {
	return extractionInstructions + "\n\nResume Text:\n---\n" + text + "\n---"
}

// Format returns the model's JSON reply, trimmed. An empty string means the
// model answered with nothing.
func (f *ExtractionFormatter) Format(ctx context.Context, text string) (string, error) {
	out, err := f.gen.GenerateJSON(ctx, f.Prompt(text), f.schema)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
