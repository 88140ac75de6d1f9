// Package prompt composes generation prompts from request parameters and
// selected example posts. Building is deterministic: identical inputs
// always produce byte-identical prompt text.
package prompt

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vacantvectors/postcraft/internal/models"
)

// exampleMarker matches an "Example N:" section header at the start of a
// line. Example text containing such markers is neutralized so embedded
// content can never masquerade as an additional template section.
var exampleMarker = regexp.MustCompile(`(?mi)^(\s*)Example(\s+\d+)\s*:`)

// Build renders the prompt for a quick-generate request. Examples are
// included verbatim after neutralization, most relevant first; zero
// examples yields an instructions-only prompt.
func Build(req models.GenerationRequest, examples []models.ExamplePost) string {
	var sb strings.Builder

	sb.WriteString("Generate a LinkedIn post using the below information. No preamble.\n\n")
	fmt.Fprintf(&sb, "1) Topic: %s\n", req.Topic)
	fmt.Fprintf(&sb, "2) Length: %s\n", req.Length.LineHint())
	fmt.Fprintf(&sb, "3) Language: %s\n", req.Language)
	tone := req.Tone
	if tone == "" {
		tone = models.ToneProfessional
	}
	fmt.Fprintf(&sb, "4) Tone: %s\n", tone)
	n := 5
	if req.Audience != "" {
		fmt.Fprintf(&sb, "%d) Target Audience: %s\n", n, req.Audience)
		n++
	}
	if req.Style != "" {
		fmt.Fprintf(&sb, "%d) Writing Style: %s\n", n, req.Style)
		n++
	}
	fmt.Fprintf(&sb, "%d) Include Hashtags: %t\n", n, req.IncludeHashtags)
	n++
	fmt.Fprintf(&sb, "%d) Include Emojis: %t\n", n, req.IncludeEmojis)
	n++
	fmt.Fprintf(&sb, "%d) Add Call-to-Action: %t\n", n, req.AddCTA)
	n++
	fmt.Fprintf(&sb, "%d) Professional Format: %t\n", n, req.Professional)
	n++

	if req.Language == models.LanguageHinglish {
		sb.WriteString("\nIf Language is Hinglish then it means it is a mix of Hindi and English.\n")
		sb.WriteString("The script for the generated post should always be English.\n")
	}

	sb.WriteString("\nAdditional Guidelines:\n")
	sb.WriteString("- " + toneGuideline(tone) + "\n")
	if req.Audience != "" {
		sb.WriteString("- " + audienceGuideline(req.Audience) + "\n")
	}
	if req.Style != "" {
		sb.WriteString("- " + styleGuideline(req.Style) + "\n")
	}
	if req.IncludeHashtags {
		sb.WriteString("- Add 3-5 relevant hashtags at the end\n")
	}
	if req.IncludeEmojis {
		sb.WriteString("- Use appropriate emojis throughout the post\n")
	}
	if req.AddCTA {
		sb.WriteString("- Include a call-to-action like \"What's your experience?\" or \"Share your thoughts\"\n")
	}
	if req.Professional {
		sb.WriteString("- Maintain formal business language\n")
	}

	if len(examples) > 0 {
		fmt.Fprintf(&sb, "\n%d) Use the writing style as per the following examples:\n", n)
	}
	writeExamples(&sb, examples)

	return sb.String()
}

// BuildCustom renders the prompt for a fully parameterized request
func BuildCustom(req models.CustomRequest) string {
	keywords := "None specified"
	if len(req.Keywords) > 0 {
		keywords = strings.Join(req.Keywords, ", ")
	}

	var sb strings.Builder
	sb.WriteString("Generate a LinkedIn post with the following specifications. No preamble.\n\n")
	sb.WriteString("CONTENT SPECIFICATIONS:\n")
	fmt.Fprintf(&sb, "1) Topic: %s\n", req.Topic)
	fmt.Fprintf(&sb, "2) Target Audience: %s\n", req.Audience)
	fmt.Fprintf(&sb, "3) Post Purpose: %s\n", req.Purpose)
	fmt.Fprintf(&sb, "4) Length: %s\n", req.Length.LineHint())
	fmt.Fprintf(&sb, "5) Language: %s\n", req.Language)
	fmt.Fprintf(&sb, "6) Writing Style: %s\n", req.Style)
	fmt.Fprintf(&sb, "7) Additional Context: %s\n", req.Context)
	fmt.Fprintf(&sb, "8) Keywords to Include: %s\n", keywords)

	sb.WriteString("\nSTYLE GUIDELINES:\n")
	sb.WriteString("- " + styleGuideline(req.Style) + "\n")
	sb.WriteString("- " + audienceGuideline(req.Audience) + "\n")
	sb.WriteString("- " + purposeGuideline(req.Purpose) + "\n")

	sb.WriteString("\nFORMATTING:\n")
	sb.WriteString("- Use appropriate emojis for engagement\n")
	sb.WriteString("- Include relevant hashtags\n")
	sb.WriteString("- Ensure the post is engaging and authentic\n")
	if req.Language == models.LanguageHinglish {
		sb.WriteString("- If language is Hinglish, mix Hindi and English naturally\n")
	}

	sb.WriteString("\nMake the post relatable, engaging, and valuable for the target audience.\n")
	return sb.String()
}

func writeExamples(sb *strings.Builder, examples []models.ExamplePost) {
	for i, ex := range examples {
		if i >= 2 {
			break
		}
		fmt.Fprintf(sb, "\nExample %d:\n\n%s\n", i+1, Neutralize(ex.Text))
	}
}

// Neutralize rewrites marker-like sequences inside example text so it is
// treated as opaque data rather than further template structure. The
// colon after a line-leading "Example N" becomes a dash, which keeps the
// text readable without delimiting a section.
func Neutralize(text string) string {
	return exampleMarker.ReplaceAllString(text, "${1}Example${2} -")
}

func toneGuideline(tone models.Tone) string {
	switch tone {
	case models.ToneHumorous:
		return "Include light jokes or witty observations"
	case models.ToneInspirational:
		return "Focus on motivation and positive messaging"
	case models.ToneEducational:
		return "Provide valuable insights or tips"
	case models.ToneCasual:
		return "Use conversational language and personal anecdotes"
	default:
		return "Maintain a professional, credible voice"
	}
}

func styleGuideline(style string) string {
	switch style {
	case "Storytelling":
		return "Structure as a narrative with beginning, middle, and end. Use personal anecdotes."
	case "List Format":
		return "Present information in numbered points or bullet format for easy readability."
	case "Question-Answer":
		return "Start with a compelling question and provide thoughtful answers."
	case "Tips & Tricks":
		return "Focus on actionable advice and practical insights."
	case "Personal Reflection":
		return "Share personal experiences, lessons learned, and honest insights."
	default:
		return "Write in an engaging and authentic manner."
	}
}

func audienceGuideline(audience string) string {
	switch audience {
	case "Students":
		return "Use relatable college/university experiences, learning journey, academic challenges."
	case "Professionals":
		return "Focus on career growth, workplace insights, professional development."
	case "Entrepreneurs":
		return "Emphasize business insights, startup journey, leadership lessons."
	case "Job Seekers":
		return "Address job search challenges, interview tips, career transition advice."
	case "General":
		return "Keep content broadly relatable and universally valuable."
	default:
		return "Keep content relevant and valuable."
	}
}

func purposeGuideline(purpose string) string {
	switch purpose {
	case "Share Experience":
		return "Be authentic and share genuine personal experiences with lessons learned."
	case "Give Advice":
		return "Provide actionable tips and insights based on experience."
	case "Ask Question":
		return "Engage audience with thought-provoking questions that encourage interaction."
	case "Celebrate Achievement":
		return "Share accomplishments while remaining humble and inspiring others."
	case "Educational":
		return "Focus on teaching something valuable with clear, actionable information."
	default:
		return "Create valuable and engaging content."
	}
}
