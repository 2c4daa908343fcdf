package country

import "strings"

// Kind classifies a verification reply from the model.
type Kind string

const (
	KindValid      Kind = "valid"
	KindCorrection Kind = "correction"
	KindInvalid    Kind = "invalid"
)

// Verification is the structured form of a free-text verification reply.
// The raw text stays the source of truth; this is derived on top of it so
// callers no longer pattern-match on prefixes themselves.
type Verification struct {
	Kind        Kind   `json:"kind"`
	CountryName string `json:"countryName,omitempty"`
	FlagEmoji   string `json:"flagEmoji,omitempty"`
}

const (
	invalidReply     = "invalid country name"
	correctionPrefix = "did you mean:"
)

// Parse classifies a model verification reply. The model is instructed to
// answer in one of three shapes: "<flag> <name>", "Did you mean: …?" or
// "Invalid country name." — anything unrecognized is treated as valid text
// so the verbatim contract is never lost.
func Parse(raw string) Verification {
	text := strings.TrimSpace(raw)
	lower := strings.ToLower(text)

	switch {
	case strings.HasPrefix(lower, invalidReply):
		return Verification{Kind: KindInvalid}
	case strings.HasPrefix(lower, correctionPrefix):
		suggestion := strings.TrimSpace(text[len(correctionPrefix):])
		suggestion = strings.TrimSuffix(suggestion, "?")
		flag, name := splitFlag(strings.TrimSpace(suggestion))
		return Verification{Kind: KindCorrection, CountryName: name, FlagEmoji: flag}
	default:
		flag, name := splitFlag(text)
		return Verification{Kind: KindValid, CountryName: name, FlagEmoji: flag}
	}
}

// splitFlag separates a leading flag emoji (a pair of regional indicator
// symbols) from the rest of the text.
func splitFlag(text string) (flag, rest string) {
	runes := []rune(text)
	if len(runes) >= 2 && isRegionalIndicator(runes[0]) && isRegionalIndicator(runes[1]) {
		return string(runes[:2]), strings.TrimSpace(string(runes[2:]))
	}
	return "", text
}

func isRegionalIndicator(r rune) bool {
	return r >= 0x1F1E6 && r <= 0x1F1FF
}
