package domain

// AskOptions carries per-request overrides for an LLM invocation.
// Zero values fall back to the provider defaults from Settings.
type AskOptions struct {
	// Model overrides the provider's default model.
	Model string

	// Temperature overrides the default sampling temperature.
	// Nil means use the provider default; zero is a valid explicit value.
	Temperature *float64

	// MaxTokens overrides the default response token budget.
	MaxTokens int
}

// Answer is the normalised result of an LLM invocation.
// Every provider returns the same shape regardless of backend.
type Answer struct {
	// Response is the generated text.
	Response string

	// Model is the model that actually produced the response.
	Model string

	// Provider is the backend name ("ollama", "openai").
	Provider string

	// Temperature is the sampling temperature used.
	Temperature float64

	// ResponseMaxTokens is the token budget applied to the response.
	ResponseMaxTokens int
}

// Summary is the normalised result of a summarisation request.
type Summary struct {
	// Summary is the generated summary text.
	Summary string

	// SummaryType names the prompt template used.
	SummaryType string

	// Model is the model that produced the summary.
	Model string

	// Provider is the backend name.
	Provider string

	// Source records what was summarised: "text" or "pdf".
	Source string

	// Temperature is the sampling temperature used.
	Temperature float64

	// ResponseMaxTokens is the token budget applied to the response.
	ResponseMaxTokens int
}

// Summary source values.
const (
	// SummarySourceText marks a summary generated from raw text input.
	SummarySourceText = "text"

	// SummarySourcePDF marks a summary generated from an extracted PDF.
	SummarySourcePDF = "pdf"
)
