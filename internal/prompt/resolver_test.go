package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sowonlabs/bunryu/internal/model"
)

func TestBuildPrompts_UserVariables(t *testing.T) {
	templates := model.PromptTemplates{
		SystemPrompt: "sys",
		UserPrompt:   "{{merchant_name}}/{{amount}}",
	}
	tx := model.Transaction{MerchantName: "Test", Amount: 1000}

	prompts, err := BuildPrompts(tx, nil, nil, templates)
	require.NoError(t, err)
	assert.Equal(t, "Test/1,000원", prompts.User)
}

func TestBuildPrompts_FallbackLiterals(t *testing.T) {
	templates := model.PromptTemplates{
		SystemPrompt: "sys",
		UserPrompt:   "{{merchant_name}}|{{mcc_code}}|{{transaction_date}}|{{description}}",
	}
	tx := model.Transaction{Amount: 500}

	prompts, err := BuildPrompts(tx, nil, nil, templates)
	require.NoError(t, err)
	// Missing fields degrade to the documented literals, never empty strings.
	assert.Equal(t, "미상|미상|미상|없음", prompts.User)
}

func TestBuildPrompts_SystemAlwaysCarriesFormatInstruction(t *testing.T) {
	tests := []struct {
		name     string
		template string
	}{
		{name: "template with placeholders", template: DefaultSystemPrompt},
		{name: "template without placeholders", template: "그냥 분류해"},
		{name: "empty template", template: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompts, err := BuildPrompts(
				model.Transaction{Amount: 1000},
				nil, nil,
				model.PromptTemplates{SystemPrompt: tt.template, UserPrompt: "u"},
			)
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(prompts.System, FormatInstruction))
		})
	}
}

func TestBuildPrompts_AccountsListActiveOnly(t *testing.T) {
	templates := model.PromptTemplates{SystemPrompt: "{{accounts_list}}", UserPrompt: "u"}
	accounts := []model.Account{
		{Code: "51100", Name: "복리후생비", Category: "판관비", IsActive: true},
		{Code: "51200", Name: "여비교통비", IsActive: false},
	}

	prompts, err := BuildPrompts(model.Transaction{Amount: 1000}, accounts, nil, templates)
	require.NoError(t, err)
	assert.Contains(t, prompts.System, `"code": "51100"`)
	assert.Contains(t, prompts.System, `"name": "복리후생비"`)
	assert.Contains(t, prompts.System, `"category": "판관비"`)
	assert.NotContains(t, prompts.System, "51200")
}

func TestBuildPrompts_ExamplesBlock(t *testing.T) {
	templates := model.PromptTemplates{SystemPrompt: "base{{examples}}", UserPrompt: "u"}
	examples := []model.ConfirmedExample{
		{MerchantName: "스타벅스 강남점", MCCCode: "5814", Amount: 6500, AccountCode: "51100", AccountName: "복리후생비"},
		{MerchantName: "대한항공", MCCCode: "4511", Amount: 450000, AccountCode: "51200", AccountName: "여비교통비"},
	}

	prompts, err := BuildPrompts(model.Transaction{Amount: 1000}, nil, examples, templates)
	require.NoError(t, err)
	assert.Contains(t, prompts.System, "과거 분류 사례:")
	assert.Contains(t, prompts.System, "- 스타벅스 강남점 (MCC:5814, 6500원) → 51100 복리후생비")
	assert.Contains(t, prompts.System, "- 대한항공 (MCC:4511, 450000원) → 51200 여비교통비")
}

func TestBuildPrompts_NoExamplesNoHeader(t *testing.T) {
	templates := model.PromptTemplates{SystemPrompt: "base{{examples}}", UserPrompt: "u"}

	prompts, err := BuildPrompts(model.Transaction{Amount: 1000}, nil, nil, templates)
	require.NoError(t, err)
	assert.Equal(t, "base"+FormatInstruction, prompts.System)
	assert.NotContains(t, prompts.System, "과거 분류 사례")
}

func TestBuildPrompts_ReplacesAllOccurrences(t *testing.T) {
	templates := model.PromptTemplates{
		SystemPrompt: "sys",
		UserPrompt:   "{{merchant_name}} and again {{merchant_name}}",
	}
	tx := model.Transaction{MerchantName: "다이소", Amount: 3000}

	prompts, err := BuildPrompts(tx, nil, nil, templates)
	require.NoError(t, err)
	assert.Equal(t, "다이소 and again 다이소", prompts.User)
}

func TestBuildPrompts_UnknownPlaceholderLeftIntact(t *testing.T) {
	// Templates are opaque: unknown or missing placeholders are not
	// validated, they just pass through.
	templates := model.PromptTemplates{SystemPrompt: "sys", UserPrompt: "{{nope}}"}

	prompts, err := BuildPrompts(model.Transaction{Amount: 1000}, nil, nil, templates)
	require.NoError(t, err)
	assert.Equal(t, "{{nope}}", prompts.User)
}

func TestFormatWon(t *testing.T) {
	assert.Equal(t, "1,000원", FormatWon(1000))
	assert.Equal(t, "450,000원", FormatWon(450000))
	assert.Equal(t, "500원", FormatWon(500))
}
