package record

import "strings"

func (r Summary) TextFragments() []string { return []string{r.Summary} }

func (r System) TextFragments() []string { return []string{r.Content} }

func (r User) TextFragments() []string {
	switch c := r.Message.Content.(type) {
	case UserText:
		return []string{string(c)}
	case UserBlocks:
		return textOf(c)
	default:
		return nil
	}
}

func (r Assistant) TextFragments() []string { return textOf(r.Message.Content) }

// textOf keeps only TextBlock bodies; tool traffic, thinking and images carry
// no displayable text.
func textOf(blocks []ContentBlock) []string {
	var out []string
	for _, b := range blocks {
		if t, ok := b.(TextBlock); ok {
			out = append(out, t.Text)
		}
	}
	return out
}

// Preview returns the first text fragment of r with runs of whitespace
// collapsed to single spaces, cut to maxRunes runes with a "..." suffix.
// A non-positive maxRunes disables truncation.
func Preview(r Record, maxRunes int) string {
	fragments := r.TextFragments()
	if len(fragments) == 0 {
		return ""
	}
	text := strings.Join(strings.Fields(fragments[0]), " ")
	if maxRunes <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return string(runes[:maxRunes]) + "..."
}
