package service

import (
	"strings"
	"testing"

	"copymill/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vaultDoc(name string, size int) *models.VaultDocument {
	return &models.VaultDocument{
		ID:        uuid.New(),
		Filename:  name,
		Content:   strings.Repeat("x", size),
	}
}

func TestBuildVaultBlock_Empty(t *testing.T) {
	assert.Empty(t, buildVaultBlock(nil, 12000, 2000))
}

func TestBuildVaultBlock_PerDocCap(t *testing.T) {
	docs := []*models.VaultDocument{
		vaultDoc("a.md", 5000),
		vaultDoc("b.md", 500),
	}
	block := buildVaultBlock(docs, 12000, 2000)

	assert.Contains(t, block, "[a.md]")
	assert.Contains(t, block, "[b.md]")
	// 2000 from the first doc, all 500 of the second.
	assert.Equal(t, 2000+500, strings.Count(block, "x"))
}

func TestBuildVaultBlock_BudgetBoundsContent(t *testing.T) {
	docs := make([]*models.VaultDocument, 10)
	for i := range docs {
		docs[i] = vaultDoc("doc.md", 3000)
	}
	block := buildVaultBlock(docs, 12000, 2000)

	// Six docs at 2000 chars each exhaust the budget.
	assert.Equal(t, 12000, strings.Count(block, "x"))
	assert.Equal(t, 6, strings.Count(block, "[doc.md]"))
}

func TestBuildVaultBlock_PreservesOrder(t *testing.T) {
	docs := []*models.VaultDocument{
		vaultDoc("first.md", 100),
		vaultDoc("second.md", 100),
		vaultDoc("third.md", 100),
	}
	block := buildVaultBlock(docs, 12000, 2000)

	first := strings.Index(block, "[first.md]")
	second := strings.Index(block, "[second.md]")
	third := strings.Index(block, "[third.md]")
	require.True(t, first >= 0 && second >= 0 && third >= 0)
	assert.Less(t, first, second)
	assert.Less(t, second, third)
}

func TestBuildVaultBlock_TailDocGetsRemainder(t *testing.T) {
	docs := []*models.VaultDocument{
		vaultDoc("a.md", 2000),
		vaultDoc("b.md", 2000),
	}
	block := buildVaultBlock(docs, 3000, 2000)

	// Second doc is truncated to the 1000 chars left in the budget.
	assert.Equal(t, 3000, strings.Count(block, "x"))
	assert.Contains(t, block, "[b.md]")
}

func TestBuildFAQBlock(t *testing.T) {
	assert.Empty(t, buildFAQBlock(nil))

	entries := []*models.FAQEntry{
		{Question: "Do you ship worldwide?", Answer: "Yes, from two warehouses."},
		{Question: "What is the return window?", Answer: "30 days."},
	}
	block := buildFAQBlock(entries)
	assert.Contains(t, block, "Q: Do you ship worldwide?\nA: Yes, from two warehouses.")
	assert.Contains(t, block, "Q: What is the return window?\nA: 30 days.")
}

func TestBuildCompanyBlock(t *testing.T) {
	company := &models.Company{Name: "Fernweh Coffee Roasters", Industry: "specialty coffee"}
	assert.Equal(t, "Fernweh Coffee Roasters (specialty coffee)\n", buildCompanyBlock(company))

	company.Website = "https://fernweh.example"
	assert.Equal(t, "Fernweh Coffee Roasters (specialty coffee) - https://fernweh.example\n", buildCompanyBlock(company))
}

func TestGenerationContextKey(t *testing.T) {
	companyID := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	assert.Equal(t,
		"gen-ctx:11111111-2222-3333-4444-555555555555:newsletter",
		generationContextKey(companyID, models.CategoryNewsletter),
	)
	assert.Equal(t, "company:11111111-2222-3333-4444-555555555555", companyKey(companyID))
}
