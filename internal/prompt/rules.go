package prompt

import (
	"fmt"
	"strings"

	"copymill/internal/models"
)

// CategoryRules are the fixed craft constraints for one content category.
type CategoryRules struct {
	Style      string
	MustDo     []string
	MustNot    []string
	WordCount  string
	BrandRules string
}

func (r CategoryRules) render() string {
	var sb strings.Builder
	if r.Style != "" {
		sb.WriteString(fmt.Sprintf("Style: %s\n", r.Style))
	}
	for _, item := range r.MustDo {
		sb.WriteString(fmt.Sprintf("Must: %s\n", item))
	}
	for _, item := range r.MustNot {
		sb.WriteString(fmt.Sprintf("Must not: %s\n", item))
	}
	if r.WordCount != "" {
		sb.WriteString(fmt.Sprintf("Typical length: %s\n", r.WordCount))
	}
	if r.BrandRules != "" {
		sb.WriteString(fmt.Sprintf("Brand: %s\n", r.BrandRules))
	}
	return sb.String()
}

var categoryRules = map[models.ContentCategory]CategoryRules{
	models.CategoryNewsletter: {
		Style:     "personal, like a letter from one person to another",
		MustDo:    []string{"open with a hook in the first sentence", "end with exactly one call to action"},
		MustNot:   []string{"stack multiple offers in one issue"},
		WordCount: "300-600 words",
	},
	models.CategoryOffer: {
		Style:     "direct response, benefit-led",
		MustDo:    []string{"state the concrete outcome of buying", "include a deadline or scarcity element if given"},
		MustNot:   []string{"bury the price or the terms"},
		WordCount: "150-400 words",
	},
	models.CategoryWebinar: {
		Style:     "curiosity-driven, promise a transformation",
		MustDo:    []string{"name what attendees walk away with", "list concrete talking points"},
		WordCount: "200-350 words",
	},
	models.CategorySocialMedia: {
		Style:     "punchy, scannable, first line carries the post",
		MustDo:    []string{"write for the stated platform's conventions"},
		MustNot:   []string{"use more than three hashtags", "sound like an advert"},
		WordCount: "50-150 words",
	},
	models.CategoryAnnouncement: {
		Style:      "clear and factual, enthusiasm without hype",
		MustDo:     []string{"answer what changed, for whom, and from when"},
		WordCount:  "100-250 words",
		BrandRules: "announcements speak in the company voice, never a personal one",
	},
	models.CategoryBlogPost: {
		Style:     "structured long-form with subheadings",
		MustDo:    []string{"open with the reader's problem", "use subheadings every few paragraphs"},
		MustNot:   []string{"pad with generic introductions"},
		WordCount: "600-1200 words",
	},
	models.CategoryCourseContent: {
		Style:     "instructional, one concept per section",
		MustDo:    []string{"state the learning objective first", "close with a practical exercise"},
		WordCount: "400-900 words",
	},
	models.CategorySalesPage: {
		Style:     "long-form persuasion: problem, agitation, solution, proof, offer",
		MustDo:    []string{"handle the three most likely objections", "repeat the call to action at least twice"},
		MustNot:   []string{"invent testimonials or numbers"},
		WordCount: "800-2000 words",
	},
	models.CategoryColdEmail: {
		Style:     "short, personal, one idea per email",
		MustDo:    []string{"make the first line about the recipient", "ask for one small next step"},
		MustNot:   []string{"open with the sender's company history", "exceed two short paragraphs"},
		WordCount: "50-120 words",
	},
}
