package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sowonlabs/bunryu/internal/model"
)

func floatp(f float64) *float64 { return &f }

func TestMatches(t *testing.T) {
	tests := []struct {
		name       string
		conditions model.RuleConditions
		tx         model.Transaction
		want       bool
	}{
		{
			name:       "empty conditions match everything",
			conditions: model.RuleConditions{},
			tx:         model.Transaction{MerchantName: "아무가게", Amount: 1000},
			want:       true,
		},
		{
			name:       "mcc code member of set",
			conditions: model.RuleConditions{MCCCodes: []string{"5814", "5812"}},
			tx:         model.Transaction{MCCCode: "5812", Amount: 1000},
			want:       true,
		},
		{
			name:       "mcc code not in set",
			conditions: model.RuleConditions{MCCCodes: []string{"5814", "5812"}},
			tx:         model.Transaction{MCCCode: "4121", Amount: 1000},
			want:       false,
		},
		{
			name:       "mcc condition requires transaction mcc",
			conditions: model.RuleConditions{MCCCodes: []string{"5814"}},
			tx:         model.Transaction{Amount: 1000},
			want:       false,
		},
		{
			name:       "merchant substring matches",
			conditions: model.RuleConditions{MerchantNameContains: "스타벅스"},
			tx:         model.Transaction{MerchantName: "스타벅스 강남점", Amount: 6500},
			want:       true,
		},
		{
			name:       "merchant substring case insensitive",
			conditions: model.RuleConditions{MerchantNameContains: "starbucks"},
			tx:         model.Transaction{MerchantName: "STARBUCKS GANGNAM", Amount: 6500},
			want:       true,
		},
		{
			name:       "merchant substring rejects other merchants",
			conditions: model.RuleConditions{MerchantNameContains: "스타벅스"},
			tx:         model.Transaction{MerchantName: "이디야 강남점", Amount: 6500},
			want:       false,
		},
		{
			name:       "merchant condition requires merchant name",
			conditions: model.RuleConditions{MerchantNameContains: "스타벅스"},
			tx:         model.Transaction{Amount: 6500},
			want:       false,
		},
		{
			name:       "amount min is inclusive",
			conditions: model.RuleConditions{AmountMin: floatp(50000)},
			tx:         model.Transaction{Amount: 50000},
			want:       true,
		},
		{
			name:       "amount below min",
			conditions: model.RuleConditions{AmountMin: floatp(50000)},
			tx:         model.Transaction{Amount: 49999},
			want:       false,
		},
		{
			name:       "amount max is inclusive",
			conditions: model.RuleConditions{AmountMax: floatp(30000)},
			tx:         model.Transaction{Amount: 30000},
			want:       true,
		},
		{
			name:       "amount above max",
			conditions: model.RuleConditions{AmountMax: floatp(30000)},
			tx:         model.Transaction{Amount: 30001},
			want:       false,
		},
		{
			name: "all conditions AND together",
			conditions: model.RuleConditions{
				MCCCodes:  []string{"5814"},
				AmountMin: floatp(50000),
			},
			tx:   model.Transaction{MCCCode: "5814", Amount: 10000},
			want: false,
		},
		{
			name: "all conditions satisfied",
			conditions: model.RuleConditions{
				MCCCodes:  []string{"5814"},
				AmountMin: floatp(50000),
			},
			tx:   model.Transaction{MCCCode: "5814", Amount: 60000},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.conditions, tt.tx))
		})
	}
}
