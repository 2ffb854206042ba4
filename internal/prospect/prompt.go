package prospect

import (
	"fmt"
	"strings"

	"github.com/sells-group/leadscout/internal/lead"
)

const (
	// maxScoringReviews caps the review snippets embedded in the scoring prompt.
	maxScoringReviews = 5
	// maxOutreachReviews caps the review snippets embedded in the outreach prompt.
	maxOutreachReviews = 3
)

// scoringSystemPrompt fixes the analyst persona and the JSON contract the
// scorer validates against.
const scoringSystemPrompt = `You are a lead-qualification analyst for a web design and digital services agency. You evaluate local businesses as prospective clients.

Score each business from 0 to 100 using these bands:
- 90-100: exceptional lead (no website + strong reputation + clear need)
- 75-89: strong lead
- 60-74: good lead
- 40-59: medium lead
- 0-39: weak lead

Respond with ONLY a JSON object, no other text:
{
  "score": 0,
  "reasoning": "why this score",
  "redFlags": ["..."],
  "opportunities": ["..."],
  "estimatedBudget": "free text",
  "urgencyLevel": "LOW|MEDIUM|HIGH",
  "category": "business category",
  "contactStrategy": "one to two sentences on how to approach them",
  "keyInsights": ["..."]
}`

// buildScoringPrompt renders one candidate as the user message for scoring.
// The output is deterministic for a given candidate.
func buildScoringPrompt(c lead.Candidate) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Business: %s\n", c.Name)
	if c.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", c.Address)
	}
	if c.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", c.Phone)
	}
	if c.Website != "" {
		fmt.Fprintf(&b, "Website: %s\n", c.Website)
	} else {
		b.WriteString("Website: NONE (no web presence found)\n")
	}
	if c.Rating > 0 {
		fmt.Fprintf(&b, "Rating: %.1f from %d reviews\n", c.Rating, c.ReviewCount)
	}
	if len(c.Types) > 0 {
		fmt.Fprintf(&b, "Categories: %s\n", strings.Join(c.Types, ", "))
	}
	if c.BusinessStatus != "" {
		fmt.Fprintf(&b, "Status: %s\n", c.BusinessStatus)
	}
	if c.PriceLevel != "" {
		fmt.Fprintf(&b, "Price level: %s\n", c.PriceLevel)
	}

	if len(c.Reviews) > 0 {
		b.WriteString("\nRecent reviews:\n")
		for i, r := range c.Reviews {
			if i >= maxScoringReviews {
				break
			}
			fmt.Fprintf(&b, "- (%.0f/5) %s\n", r.Rating, r.Text)
		}
	}

	b.WriteString("\nEvaluate this business as a prospective client for web design and digital services.")
	return b.String()
}

// buildOutreachPrompt renders the user message for outreach copy generation.
func buildOutreachPrompt(c lead.Candidate, s lead.ScoreResult, p OutreachPersona) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write a personalized outreach email body (150-200 words, no subject line) to %s", c.Name)
	if c.Address != "" {
		fmt.Fprintf(&b, " at %s", c.Address)
	}
	b.WriteString(".\n\n")

	if c.HasWebsite() {
		fmt.Fprintf(&b, "They have a website: %s\n", c.Website)
	} else {
		b.WriteString("They have no website; lead with what that costs them.\n")
	}

	if len(s.Opportunities) > 0 {
		b.WriteString("Opportunities to reference:\n")
		for _, o := range s.Opportunities {
			fmt.Fprintf(&b, "- %s\n", o)
		}
	}

	if len(c.Reviews) > 0 {
		b.WriteString("Customer reviews to draw from:\n")
		for i, r := range c.Reviews {
			if i >= maxOutreachReviews {
				break
			}
			fmt.Fprintf(&b, "- %s\n", r.Text)
		}
	}

	fmt.Fprintf(&b, "\nSign off as %s, %s at %s", p.SenderName, p.SenderRole, p.Company)
	if p.SignOff != "" {
		fmt.Fprintf(&b, " (%s)", p.SignOff)
	}
	b.WriteString(". Warm, specific, no hard sell. Return only the email body.")
	return b.String()
}
