package prompt

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/sowonlabs/bunryu/internal/model"
)

// Prompts is a resolved system/user prompt pair ready to send to a model.
type Prompts struct {
	System string
	User   string
}

var wonPrinter = message.NewPrinter(language.Korean)

// accountEntry is the shape serialized into the {{accounts_list}} variable.
type accountEntry struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// BuildPrompts substitutes template placeholders and appends the fixed JSON
// format instruction to the system prompt.
//
// The templates are opaque: a template omitting {{accounts_list}} or any
// other placeholder silently loses that context. The resolver does not
// validate placeholder presence.
func BuildPrompts(tx model.Transaction, accounts []model.Account, examples []model.ConfirmedExample, templates model.PromptTemplates) (Prompts, error) {
	entries := make([]accountEntry, 0, len(accounts))
	for _, a := range accounts {
		if !a.IsActive {
			continue
		}
		entries = append(entries, accountEntry{Code: a.Code, Name: a.Name, Category: a.Category})
	}

	accountsJSON, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return Prompts{}, fmt.Errorf("failed to serialize accounts list: %w", err)
	}

	systemVars := map[string]string{
		"accounts_list": string(accountsJSON),
		"examples":      formatExamples(examples),
	}

	userVars := map[string]string{
		"merchant_name":    orFallback(tx.MerchantName, fallbackUnknown),
		"mcc_code":         orFallback(tx.MCCCode, fallbackUnknown),
		"amount":           FormatWon(tx.Amount),
		"transaction_date": orFallback(tx.TransactionDate, fallbackUnknown),
		"description":      orFallback(tx.Description, fallbackNone),
	}

	return Prompts{
		System: resolve(templates.SystemPrompt, systemVars) + FormatInstruction,
		User:   resolve(templates.UserPrompt, userVars),
	}, nil
}

// resolve replaces every {{key}} occurrence with its value. Literal text
// replacement only: no recursion, no escaping.
func resolve(template string, vars map[string]string) string {
	result := template
	for key, value := range vars {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return result
}

// formatExamples renders recent confirmed classifications as a few-shot
// block. Empty input yields an empty string, header included.
func formatExamples(examples []model.ConfirmedExample) string {
	if len(examples) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\n과거 분류 사례:")
	for _, ex := range examples {
		b.WriteString(fmt.Sprintf("\n- %s (MCC:%s, %s원) → %s %s",
			ex.MerchantName,
			ex.MCCCode,
			strconv.FormatFloat(ex.Amount, 'f', -1, 64),
			ex.AccountCode,
			ex.AccountName))
	}
	return b.String()
}

// FormatWon renders an amount with thousands separators and the 원 suffix,
// e.g. 1000 → "1,000원".
func FormatWon(amount float64) string {
	return wonPrinter.Sprintf("%v원", number.Decimal(amount))
}

func orFallback(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
