package brand

import "strings"

// FormatContext renders a manual into the normalized text block embedded in
// generation and audit prompts. One labeled line per non-empty field, fixed
// order, markdown body last. Pure and deterministic.
func FormatContext(m Manual) string {
	var parts []string
	if m.Name != "" {
		parts = append(parts, "Brand name: "+m.Name)
	}
	if m.Product != "" {
		parts = append(parts, "Product: "+m.Product)
	}
	if m.Tone != "" {
		parts = append(parts, "Tone: "+m.Tone)
	}
	if m.TargetAudience != "" {
		parts = append(parts, "Target audience: "+m.TargetAudience)
	}
	if m.Restrictions != "" {
		parts = append(parts, "Restrictions: "+m.Restrictions)
	}
	if m.Markdown != "" {
		parts = append(parts, "\nBrand manual:\n"+m.Markdown)
	}
	return strings.Join(parts, "\n")
}
