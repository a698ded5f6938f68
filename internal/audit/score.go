package audit

import "encoding/json"

// defaultScore is used when the model response carries no parseable verdict.
// Audit scores are best-effort signals; a malformed response must not fail
// the audit.
const defaultScore = 0.8

type verdict struct {
	ScoreConformidad *float64 `json:"score_conformidad"`
}

// ExtractScore pulls the compliance score out of a free-text model response.
// It locates the first balanced {...} region, decodes it and reads the
// score_conformidad field; any failure along the way yields the default
// score. The result is clamped to [0, 1].
func ExtractScore(text string) float64 {
	region, ok := firstJSONObject(text)
	if !ok {
		return defaultScore
	}
	var v verdict
	if err := json.Unmarshal([]byte(region), &v); err != nil || v.ScoreConformidad == nil {
		return defaultScore
	}
	return Clamp(*v.ScoreConformidad)
}

// Clamp bounds a score to [0, 1].
func Clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// firstJSONObject scans for the first balanced brace region, ignoring braces
// inside JSON string literals.
func firstJSONObject(text string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if start >= 0 && inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start >= 0 {
				depth--
				if depth == 0 {
					return text[start : i+1], true
				}
			}
		case '"':
			if start >= 0 {
				inString = true
			}
		}
	}
	return "", false
}
