package audit

import "fmt"

const evaluationTemplate = `You are a brand audit expert. Analyze the submitted image and compare it against the brand manual and the textual content.

**Textual content to validate:**
%s

**Brand manual:**
%s

**Analysis instructions:**
1. Evaluate whether the image is coherent with the brand identity
2. Check whether the visual tone is appropriate
3. Verify correct use of colors and graphic elements
4. Detect possible violations of the brand restrictions
5. Evaluate the technical quality of the image

**Required response (JSON format):**
{
    "cumple": true/false,
    "score_conformidad": 0.0-1.0,
    "razones": ["list of compliance or failure reasons"],
    "recomendaciones": ["improvement suggestions if non-compliant"],
    "analisis_detallado": "detailed explanation of the analysis"
}`

// evaluationPrompt embeds the content text and brand context into the fixed
// audit instruction.
func evaluationPrompt(contentText, brandContext string) string {
	return fmt.Sprintf(evaluationTemplate, contentText, brandContext)
}
