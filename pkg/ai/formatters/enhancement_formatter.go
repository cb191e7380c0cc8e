package formatters

import (
	"context"
	"strings"

	"resume-builder/pkg/ai"
)

// EnhancementFormatter rewrites one description into a single tighter
// paragraph without adding facts.
type EnhancementFormatter struct {
	gen ai.Generator
}

func NewEnhancementFormatter(gen ai.Generator) *EnhancementFormatter {
	return &EnhancementFormatter{gen: gen}
}

func (f *EnhancementFormatter) Prompt(description string) string {
	return "Rewrite and enhance the following professional experience description for a resume, " +
		"making it more impactful, professional, and concise. Focus on action verbs and quantifiable " +
		"results where possible based on the text. Do not add any new information. " +
		"Keep the response as a single paragraph. Original description: \"" + description + "\""
}

func (f *EnhancementFormatter) Format(ctx context.Context, description string) (string, error) {
	out, err := f.gen.Generate(ctx, f.Prompt(description))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
