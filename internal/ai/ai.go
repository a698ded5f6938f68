// Package ai declares the request/response shapes shared by the external
// model capability clients. The clients themselves live in subpackages; the
// consuming services depend on small interfaces over these types.
package ai

// TextRequest is a single text-generation call.
type TextRequest struct {
	System      string
	Prompt      string
	Model       string
	Temperature float64
	MaxTokens   int
}

// Usage reports token consumption for one model call.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// TextResult is a successful text-generation response.
type TextResult struct {
	Text  string
	Model string
	Usage Usage
}

// Image is the input to a vision-analysis call: either raw bytes or a
// reference URL, never both.
type Image struct {
	Data     []byte
	MIMEType string
	URL      string
}
