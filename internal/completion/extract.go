package completion

import "strings"

// ResponsePayload is the loosely-structured completion service response.
// The service may expose a single flattened text field, or a sequence of
// structured output items each carrying nested content fragments.
type ResponsePayload struct {
	OutputText string       `json:"output_text"`
	Output     []OutputItem `json:"output"`
}

// OutputItem is one structured output entry.
type OutputItem struct {
	Type    string            `json:"type"`
	Content []ContentFragment `json:"content"`
}

// ContentFragment is one nested content piece inside an output item.
type ContentFragment struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ExtractText pulls a single text answer out of the payload.
//
// Precedence: the flattened OutputText field when non-blank, then the content
// of the first "message" item with non-blank fragments, then all non-blank
// fragments across every item regardless of kind. Fragments are joined in
// encounter order. A payload with no text anywhere yields an empty string.
func ExtractText(payload *ResponsePayload) string {
	if payload == nil {
		return ""
	}

	if strings.TrimSpace(payload.OutputText) != "" {
		return payload.OutputText
	}

	for _, item := range payload.Output {
		if item.Type != "message" {
			continue
		}
		if texts := nonBlankTexts(item.Content); len(texts) > 0 {
			return strings.Join(texts, "\n")
		}
	}

	var all []string
	for _, item := range payload.Output {
		all = append(all, nonBlankTexts(item.Content)...)
	}
	return strings.Join(all, "\n")
}

func nonBlankTexts(fragments []ContentFragment) []string {
	var texts []string
	for _, fragment := range fragments {
		if strings.TrimSpace(fragment.Text) != "" {
			texts = append(texts, fragment.Text)
		}
	}
	return texts
}
