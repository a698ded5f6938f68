package generation

import "fmt"

const (
	systemContent = "You are a content marketing expert. Create high quality content aligned with the brand."
	systemManual  = "You are a branding and marketing expert. Your task is to create a structured, complete brand manual."
)

const descriptionTemplate = `Based on the brand manual and the product guidelines, write a professional and engaging product description.

Product: %s
Title: %s

Brand manual context:
%s

The description must be persuasive, match the brand tone, and be ready to use in e-commerce.`

const videoScriptTemplate = `Write a professional marketing video script.

Product: %s
Title: %s

Brand manual context:
%s

The script must include:
- An introduction hook
- Key benefits
- A call to action
- Estimated duration: 30-60 seconds`

const imagePromptTemplate = `Write a detailed prompt for AI image generation.

Product: %s
Title: %s

Brand manual context:
%s

The prompt must be detailed, specify visual style, lighting and composition, and stay coherent with the brand identity.`

const manualTemplate = `Create a detailed brand manual from the following information:

**Product/Service:** %s
**Communication tone:** %s
**Target audience:** %s
**Restrictions:** %s

The manual must include:
1. Brand identity
2. Brand values
3. Tone and voice guide
4. Recommended color palette
5. Suggested typography
6. Key messages
7. Content examples (descriptions, headlines)
8. Mistakes to avoid

Format: structured Markdown.`

var contentTemplates = map[string]string{
	"description":  descriptionTemplate,
	"video_script": videoScriptTemplate,
	"image_prompt": imagePromptTemplate,
}

// contentPrompt renders the template for the content type. Unknown types fall
// back to the description template; that default is deliberate, not an error.
func contentPrompt(contentType, brandContext, product, title string) string {
	tmpl, ok := contentTemplates[contentType]
	if !ok {
		tmpl = descriptionTemplate
	}
	return fmt.Sprintf(tmpl, product, title, brandContext)
}

func manualPrompt(product, tone, audience, restrictions string) string {
	return fmt.Sprintf(manualTemplate, product, tone, audience, restrictions)
}
