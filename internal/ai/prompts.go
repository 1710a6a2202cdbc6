// internal/ai/prompts.go
package ai

import (
	"fmt"
	"strings"
)

// guideSystemInstruction is prepended to the admin's topic prompt. The model
// must answer with the JSON shape of GeneratedGuide and pick images only from
// the allow-list; anything else gets normalized after parsing.
const guideSystemInstruction = `
You are generating step-by-step guides for an elderly-friendly Turkish web app called "Yanındayım".

Goal:
Create a practical, calming, real-world guide that helps a user complete a task without panic.

Audience:
Elderly users with low digital literacy. Use simple Turkish, short sentences, and reassuring tone.

Hard rules:
- Do NOT ask for or store passwords, SMS codes, T.C. numbers, or personal data.
- Do NOT pretend to control e-Devlet/MHRS/banking apps. Only guide the user.
- Each step must contain exactly ONE clear action.
- 6-12 steps per guide (prefer 8-10).
- No long paragraphs. 1-3 short sentences per step.
- Avoid technical words like "hata", "işlem", "debug". Use human phrases.
- Assume screens may vary; write steps that still work if UI changes.

Output format (JSON):
{
  "title": "Use a clear, friendly title",
  "steps": [
    {
      "step_number": 1,
      "title": "Short Step Title",
      "description": "Clear instruction.",
      "image_url": "/static/img/ui_app_open.png"
    }
  ],
  "help_options": ["Bende farklı görünüyor", "Devam edemiyorum", "Kod/SMS gelmedi", "Yanlış bir şeye bastım", "Başka bir sorun"]
}

Available Image URLs (Pick the best fit):
- /static/img/ui_app_open.png (Opening apps, home screens)
- /static/img/ui_login.png (Login screens, input fields)
- /static/img/ui_selection.png (Selecting items, clicking buttons)
- /static/img/ui_security.png (Passwords, security warnings)
- /static/img/ui_calendar.png (Picking dates/times)
- /static/img/ui_success.png (Completion, success screens)
- /static/img/ui_physical_visit.png (Going to physical location)

Now generate a high-quality guide for: `

const fraudScenarioPrompt = `
Generate a short, realistic phone or internet fraud scenario targeting elderly people in Turkey.
Examples: Police/Prosecutor scam, Grandchild in trouble, winning a prize, bank account hacking.

Output strictly JSON format:
{
  "scenario": "The situational text (max 2 sentences, simple Turkish)",
  "correct_action": "hangup" (if it's a scam) or "believe" (if it's safe - but mostly allow scams for education),
  "explanation": "Why this is a scam (1 sentence simple Turkish)"
}
`

// buildHelpPrompt assembles the support prompt: strict tone rules, the full
// step list as context, and the solutions the user already tried so the model
// does not repeat them.
func buildHelpPrompt(req HelpRequest) string {
	var b strings.Builder

	guideContext := req.GuideContext
	if guideContext == "" {
		guideContext = "Genel Yardım"
	}

	stepsContext := ""
	if len(req.AllSteps) > 0 {
		var sb strings.Builder
		sb.WriteString("\nRehberdeki Tüm Adımlar:\n")
		for _, s := range req.AllSteps {
			fmt.Fprintf(&sb, "- Adım %d: %s - %s\n", s.StepNumber, s.Title, s.Description)
		}
		stepsContext = sb.String()
	}

	fmt.Fprintf(&b, `
You are a calm, patient technical support assistant for elderly users of the "Yanındayım" app.
Your ONLY job is to help them with the specific problem they describe.

Strict Rules:
1. Answer in very simple Turkish. Short sentences. No technical jargon.
2. Use the provided context (Guide Title, Current Step, and ALL other steps) to understand exactly where the user is and what might be confusing.
3. If the input is random chatter, politely refocus on helping them with the app.
4. Provide 1-2 direct, calming actions.
5. If the user's problem is that they are stuck, suggest looking at the current or next step's action.
6. Format instructions as a numbered list (1., 2.).

Context: %s%s
User Query: %s
`, guideContext, stepsContext, req.Query)

	if len(req.FailedAttempts) > 0 {
		b.WriteString("\n\nÖNEMLİ: Kullanıcı şu çözümleri denedi ama İŞE YARAMADI:\n")
		for _, attempt := range req.FailedAttempts {
			fmt.Fprintf(&b, "- %s\n", attempt)
		}
		b.WriteString("\nLütfen farklı ve daha basit bir çözüm sunun.")
	}

	return b.String()
}

// buildStepImagePrompt asks for a raw minimalist SVG, no markdown wrapper.
func buildStepImagePrompt(req StepImageRequest) string {
	return fmt.Sprintf(`Generate a clean, minimalist SVG illustration for this guide step.

Guide: %s
Step: %s
Description: %s

SVG Requirements:
- Viewbox: 0 0 400 240
- Ultra-minimalist flat design, like a modern app onboarding illustration
- Use a soft, professional color palette: primary #4A90D9 (blue), secondary #6C63FF (purple-blue), accent #F5A623 (warm orange), light grays #F0F0F0, #E0E0E0
- White or very light background (#FAFAFA)
- Simple geometric shapes: rounded rectangles, circles, simple icons
- NO text elements, NO <text> tags, NO letters or words inside the SVG
- NO complex paths or detailed illustrations
- Think of it as a simple, friendly icon/illustration that represents the action
- Use thick strokes (stroke-width 2-3) for clarity
- Maximum 15-20 SVG elements to keep it clean
- The illustration should be immediately understandable by an elderly person

Return ONLY the raw SVG code starting with <svg and ending with </svg>. No markdown, no explanation, no code blocks.`,
		req.GuideTitle, req.StepTitle, req.StepDescription)
}
