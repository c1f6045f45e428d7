package prompt

import (
	"strings"
	"testing"

	"copymill/internal/dto"
	"copymill/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullInputs() Inputs {
	length := 1
	tone := 3
	return Inputs{
		Company: &models.Company{
			Name:       "Fernweh Coffee Roasters",
			Industry:   "specialty coffee",
			Website:    "https://fernweh.example",
			WritingDNA: "Warm, direct, never salesy.",
			Values:     "Transparency over hype",
		},
		Style: &models.StyleProfile{
			Tone:         "conversational",
			AvgWordCount: 180,
			Vocabulary:   []string{"single-origin", "roast curve"},
			Summary:      "Short paragraphs, frequent questions to the reader.",
		},
		Examples: []*models.ContentItem{
			{Output: "Our new Kenya lot just landed."},
			{Output: "Why we publish our green prices."},
		},
		TemplateOverride: "Open with a question. Close with the CTA on its own line.",
		Lessons: []*models.Lesson{
			{Severity: models.SeverityMedium, Feedback: "avoid exclamation marks"},
			{Severity: models.SeverityHigh, Feedback: "never promise discounts"},
		},
		VaultBlock: "[pricing.md]\nWholesale starts at 5kg.\n\n",
		FAQBlock:   "Q: Do you ship worldwide?\nA: Yes.\n\n",
		Category:   models.CategoryNewsletter,
		Brief: &dto.Brief{
			Audience: "home brewers",
			Goal:     "announce the new Kenya lot",
			CTA:      "Order before Friday",
			Length:   &length,
			Tone:     &tone,
		},
	}
}

func TestBuildSystemPrompt_Deterministic(t *testing.T) {
	in := fullInputs()
	assert.Equal(t, BuildSystemPrompt(in), BuildSystemPrompt(in))
}

func TestBuildSystemPrompt_SectionOrder(t *testing.T) {
	out := BuildSystemPrompt(fullInputs())

	sections := []string{
		"## WRITING DNA (highest priority)",
		"## COMPANY IDENTITY",
		"## REFERENCE MATERIAL",
		"## FREQUENTLY ASKED QUESTIONS",
		"## ANALYSED STYLE PROFILE",
		"## EXAMPLE POSTS (match this voice)",
		"## RULES FOR NEWSLETTER",
		"## CUSTOM TEMPLATE",
		"## LESSONS FROM PAST FEEDBACK",
		"## OUTPUT RULES",
	}
	last := -1
	for _, section := range sections {
		idx := strings.Index(out, section)
		require.GreaterOrEqual(t, idx, 0, section)
		assert.Greater(t, idx, last, "%s out of order", section)
		last = idx
	}
}

func TestBuildSystemPrompt_AbsentSourcesLeaveNoHeaders(t *testing.T) {
	out := BuildSystemPrompt(Inputs{
		Company:  &models.Company{Name: "Acme", Industry: "tools"},
		Category: models.CategoryColdEmail,
	})

	assert.NotContains(t, out, "## WRITING DNA")
	assert.NotContains(t, out, "## ANALYSED STYLE PROFILE")
	assert.NotContains(t, out, "## EXAMPLE POSTS")
	assert.NotContains(t, out, "## REFERENCE MATERIAL")
	assert.NotContains(t, out, "## FREQUENTLY ASKED QUESTIONS")
	assert.NotContains(t, out, "## CUSTOM TEMPLATE")
	assert.NotContains(t, out, "## LESSONS FROM PAST FEEDBACK")

	// Category rules and output rules are always present.
	assert.Contains(t, out, "## RULES FOR COLD EMAIL")
	assert.Contains(t, out, "## OUTPUT RULES")
}

func TestBuildSystemPrompt_OutputRules(t *testing.T) {
	out := BuildSystemPrompt(fullInputs())

	assert.Contains(t, out, "- You are writing a newsletter.")
	assert.Contains(t, out, "- Target length: 100-250 words.")
	for _, word := range bannedVocabulary {
		assert.Contains(t, out, word)
	}
	assert.Contains(t, out, "Output only the finished content.")
}

func TestBuildSystemPrompt_LessonsHighFirst(t *testing.T) {
	out := BuildSystemPrompt(fullInputs())

	high := strings.Index(out, "never promise discounts")
	medium := strings.Index(out, "avoid exclamation marks")
	require.True(t, high >= 0 && medium >= 0)
	assert.Less(t, high, medium)
}

func TestPartitionBySeverity_StableWithinGroups(t *testing.T) {
	lessons := []*models.Lesson{
		{ID: uuid.New(), Severity: models.SeverityLow, Feedback: "low-1"},
		{ID: uuid.New(), Severity: models.SeverityHigh, Feedback: "high-1"},
		{ID: uuid.New(), Severity: models.SeverityMedium, Feedback: "med-1"},
		{ID: uuid.New(), Severity: models.SeverityHigh, Feedback: "high-2"},
		{ID: uuid.New(), Severity: models.SeverityLow, Feedback: "low-2"},
	}

	got := PartitionBySeverity(lessons)
	var order []string
	for _, lesson := range got {
		order = append(order, lesson.Feedback)
	}
	assert.Equal(t, []string{"high-1", "high-2", "low-1", "med-1", "low-2"}, order)
}

func TestBuildUserPrompt(t *testing.T) {
	tone := 0
	out := BuildUserPrompt(models.CategorySalesPage, &dto.Brief{
		Audience: "CTOs",
		Goal:     "book demos",
		Tone:     &tone,
	})

	assert.True(t, strings.HasPrefix(out, "Write a sales page for this company.\n"))
	assert.Contains(t, out, "Audience: CTOs\n")
	assert.Contains(t, out, "Goal: book demos\n")
	assert.Contains(t, out, "Tone: formal\n")
	assert.NotContains(t, out, "Call to action")
}

func TestBuildUserPrompt_NilBrief(t *testing.T) {
	assert.Equal(t, "Write a cold email for this company.\n", BuildUserPrompt(models.CategoryColdEmail, nil))
}

func TestTargetLength_Defaults(t *testing.T) {
	assert.Equal(t, "250-600 words", targetLength(nil))

	bad := 9
	assert.Equal(t, "250-600 words", targetLength(&dto.Brief{Length: &bad}))
}

func TestCategoryRulesCoverEveryCategory(t *testing.T) {
	for _, category := range models.AllCategories {
		rules, ok := categoryRules[category]
		require.True(t, ok, string(category))
		assert.NotEmpty(t, rules.render(), string(category))
		assert.NotEmpty(t, categoryNames[category], string(category))
	}
}
