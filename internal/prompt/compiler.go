// Package prompt compiles assembled generation context into the final
// instruction block sent to the model. Everything here is pure: identical
// inputs produce byte-identical output, which the context cache and the
// tests both rely on.
package prompt

import (
	"fmt"
	"strings"

	"copymill/internal/dto"
	"copymill/internal/models"
)

// Inputs is the assembled context for one generation. Nil or empty fields
// render nothing: an absent source never leaves an empty header behind.
type Inputs struct {
	Company          *models.Company
	Style            *models.StyleProfile
	Examples         []*models.ContentItem
	TemplateOverride string
	Lessons          []*models.Lesson
	VaultBlock       string
	FAQBlock         string
	Category         models.ContentCategory
	Brief            *dto.Brief
}

// bannedVocabulary never appears in finished content regardless of company
// or category.
var bannedVocabulary = []string{
	"delve", "unleash", "unlock", "elevate", "game-changer",
	"synergy", "leverage", "cutting-edge", "revolutionize", "seamless",
}

var categoryNames = map[models.ContentCategory]string{
	models.CategoryNewsletter:    "newsletter",
	models.CategoryOffer:         "offer",
	models.CategoryWebinar:       "webinar description",
	models.CategorySocialMedia:   "social media post",
	models.CategoryAnnouncement:  "announcement",
	models.CategoryBlogPost:      "blog post",
	models.CategoryCourseContent: "course content",
	models.CategorySalesPage:     "sales page",
	models.CategoryColdEmail:     "cold email",
}

// BuildSystemPrompt renders the blocks whose backing data is present, in a
// fixed order: writing DNA, company identity, vault material, FAQ pairs,
// style profile, example posts, category rules, template override, lessons,
// output rules.
func BuildSystemPrompt(in Inputs) string {
	var sb strings.Builder

	sb.WriteString("You are the in-house content writer for the company described below.\n")

	if in.Company != nil && in.Company.WritingDNA != "" {
		sb.WriteString("\n## WRITING DNA (highest priority)\n")
		sb.WriteString(in.Company.WritingDNA)
		sb.WriteString("\n")
	}

	if block := buildIdentityBlock(in.Company); block != "" {
		sb.WriteString("\n## COMPANY IDENTITY\n")
		sb.WriteString(block)
	}

	if in.VaultBlock != "" {
		sb.WriteString("\n## REFERENCE MATERIAL\n")
		sb.WriteString(in.VaultBlock)
	}

	if in.FAQBlock != "" {
		sb.WriteString("\n## FREQUENTLY ASKED QUESTIONS\n")
		sb.WriteString(in.FAQBlock)
	}

	if in.Style != nil {
		sb.WriteString("\n## ANALYSED STYLE PROFILE\n")
		sb.WriteString(buildStyleBlock(in.Style))
	}

	if len(in.Examples) > 0 {
		sb.WriteString("\n## EXAMPLE POSTS (match this voice)\n")
		for i, example := range in.Examples {
			sb.WriteString(fmt.Sprintf("\n### Example %d\n%s\n", i+1, example.Output))
		}
	}

	if rules, ok := categoryRules[in.Category]; ok {
		sb.WriteString(fmt.Sprintf("\n## RULES FOR %s\n", strings.ToUpper(categoryNames[in.Category])))
		sb.WriteString(rules.render())
	}

	if in.TemplateOverride != "" {
		sb.WriteString("\n## CUSTOM TEMPLATE\n")
		sb.WriteString(in.TemplateOverride)
		sb.WriteString("\n")
	}

	if len(in.Lessons) > 0 {
		sb.WriteString("\n## LESSONS FROM PAST FEEDBACK\n")
		sb.WriteString(buildLessonsBlock(in.Lessons))
	}

	sb.WriteString("\n## OUTPUT RULES\n")
	sb.WriteString(buildOutputRules(in.Category, in.Brief))

	return sb.String()
}

func buildIdentityBlock(company *models.Company) string {
	if company == nil {
		return ""
	}

	var sb strings.Builder
	writeField := func(label, value string) {
		if value != "" {
			sb.WriteString(fmt.Sprintf("%s: %s\n", label, value))
		}
	}

	writeField("Name", company.Name)
	writeField("Industry", company.Industry)
	writeField("Website", company.Website)
	writeField("Values", company.Values)
	writeField("Philosophy", company.Philosophy)
	writeField("Founders", company.Founders)
	writeField("History", company.History)
	writeField("Achievements", company.Achievements)
	return sb.String()
}

func buildStyleBlock(style *models.StyleProfile) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Tone: %s\n", style.Tone))
	sb.WriteString(fmt.Sprintf("Average word count: %d\n", style.AvgWordCount))
	if len(style.Vocabulary) > 0 {
		sb.WriteString(fmt.Sprintf("Characteristic vocabulary: %s\n", strings.Join(style.Vocabulary, ", ")))
	}
	if len(style.CommonPhrases) > 0 {
		sb.WriteString(fmt.Sprintf("Common phrases: %s\n", strings.Join(style.CommonPhrases, ", ")))
	}
	if len(style.PreferredFormats) > 0 {
		sb.WriteString(fmt.Sprintf("Preferred formats: %s\n", strings.Join(style.PreferredFormats, ", ")))
	}
	if style.Summary != "" {
		sb.WriteString(style.Summary)
		sb.WriteString("\n")
	}
	return sb.String()
}

// buildLessonsBlock renders high-severity lessons before everything else so
// the most load-bearing corrections are never buried. Within each group the
// original order is preserved (stable partition, not a re-sort).
func buildLessonsBlock(lessons []*models.Lesson) string {
	var sb strings.Builder
	for _, lesson := range PartitionBySeverity(lessons) {
		scope := "all content"
		if lesson.ContentType != nil {
			scope = categoryNames[*lesson.ContentType]
		}
		sb.WriteString(fmt.Sprintf("- [%s, %s] %s\n", lesson.Severity, scope, lesson.Feedback))
	}
	return sb.String()
}

// PartitionBySeverity returns high-severity lessons first, then the rest,
// preserving relative order within each group.
func PartitionBySeverity(lessons []*models.Lesson) []*models.Lesson {
	out := make([]*models.Lesson, 0, len(lessons))
	for _, lesson := range lessons {
		if lesson.Severity == models.SeverityHigh {
			out = append(out, lesson)
		}
	}
	for _, lesson := range lessons {
		if lesson.Severity != models.SeverityHigh {
			out = append(out, lesson)
		}
	}
	return out
}

var lengthTargets = [5]string{
	"under 100 words",
	"100-250 words",
	"250-600 words",
	"600-1200 words",
	"1200 words or more",
}

func targetLength(brief *dto.Brief) string {
	if brief != nil && brief.Length != nil && *brief.Length >= 0 && *brief.Length < len(lengthTargets) {
		return lengthTargets[*brief.Length]
	}
	return lengthTargets[2]
}

func buildOutputRules(category models.ContentCategory, brief *dto.Brief) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("- You are writing a %s.\n", categoryNames[category]))
	sb.WriteString(fmt.Sprintf("- Target length: %s.\n", targetLength(brief)))
	sb.WriteString(fmt.Sprintf("- Never use these words: %s.\n", strings.Join(bannedVocabulary, ", ")))
	sb.WriteString("- Output only the finished content. No preamble, no commentary, no explanations.\n")
	return sb.String()
}

var toneLabels = [5]string{"formal", "professional", "conversational", "casual", "playful"}

// BuildUserPrompt renders the caller's brief as the user turn.
func BuildUserPrompt(category models.ContentCategory, brief *dto.Brief) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Write a %s for this company.\n", categoryNames[category]))

	if brief == nil {
		return sb.String()
	}

	writeField := func(label, value string) {
		if value != "" {
			sb.WriteString(fmt.Sprintf("%s: %s\n", label, value))
		}
	}

	writeField("Audience", brief.Audience)
	writeField("Goal", brief.Goal)
	writeField("Call to action", brief.CTA)
	writeField("Keywords to include", brief.Keywords)
	writeField("Platform", brief.Platform)
	if brief.Tone != nil && *brief.Tone >= 0 && *brief.Tone < len(toneLabels) {
		writeField("Tone", toneLabels[*brief.Tone])
	}
	return sb.String()
}
