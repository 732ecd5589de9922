package domain

import "fmt"

// SummaryType describes one entry in the summary prompt registry.
type SummaryType struct {
	// Name is the registry key ("concise", "detailed", "quiz").
	Name string

	// DisplayName is the human-readable name.
	DisplayName string

	// Description explains what the summary type produces.
	Description string

	// Prompt is the template; the document text replaces %s.
	Prompt string
}

// summaryTypes is the fixed registry of supported summary prompts.
// Order here is the order surfaced to callers.
var summaryTypes = []SummaryType{
	{
		Name:        "concise",
		DisplayName: "Concise summary",
		Description: "Writes a concise summary of the text",
		Prompt: `Write a concise summary of the following:
%s
Do not include any other text, return only the summary.
Generate the summary in the same language as the text provided.
CONCISE SUMMARY:
`,
	},
	{
		Name:        "detailed",
		DisplayName: "Detailed summary",
		Description: "Provides a detailed summary of the text",
		Prompt: `Provide a detailed summary of the following text:
%s
Do not include any other text, return only the summary.
Generate the summary in the same language as the text provided.
DETAILED SUMMARY:
`,
	},
	{
		Name:        "quiz",
		DisplayName: "Generate questions",
		Description: "Generates questions based on the text",
		Prompt: `Generate a list of questions based on the following text:
%s
Do not include any other text, return only the list of questions.
Do not include anything like here is the list of questions or similar.
Generate the questions in the same language as the text provided.
QUESTIONS:
`,
	},
}

// SummaryTypes returns the supported summary types in registry order.
func SummaryTypes() []SummaryType {
	out := make([]SummaryType, len(summaryTypes))
	copy(out, summaryTypes)
	return out
}

// SummaryTypeByName looks up a summary type by its registry key.
// Unknown names fail with ErrUnknownSummaryType naming the type.
func SummaryTypeByName(name string) (SummaryType, error) {
	for _, st := range summaryTypes {
		if st.Name == name {
			return st, nil
		}
	}
	return SummaryType{}, fmt.Errorf("%w: %q", ErrUnknownSummaryType, name)
}
