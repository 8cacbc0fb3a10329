package rule

import "github.com/sowonlabs/bunryu/internal/model"

// SeedRule is a starter rule referencing its target account by code. The
// seed command skips any rule whose account code is not registered yet.
type SeedRule struct {
	Name        string
	AccountCode string
	Conditions  model.RuleConditions
	Priority    int
}

func floatPtr(f float64) *float64 { return &f }

// SeedRules returns the built-in starter rule set covering common Korean
// corporate-card spend patterns (MCC → account code mappings).
func SeedRules() []SeedRule {
	return []SeedRule{
		{
			Name:        "소액 카페 → 회의비",
			Priority:    11,
			Conditions:  model.RuleConditions{MCCCodes: []string{"5814"}, AmountMax: floatPtr(30000)},
			AccountCode: "52700",
		},
		{
			Name:        "카페/커피숍 → 복리후생비",
			Priority:    10,
			Conditions:  model.RuleConditions{MCCCodes: []string{"5814", "5812"}, MerchantNameContains: "스타벅스"},
			AccountCode: "51100",
		},
		{
			Name:        "음식점(회식) → 접대비",
			Priority:    9,
			Conditions:  model.RuleConditions{MCCCodes: []string{"5812", "5813"}, AmountMin: floatPtr(50000)},
			AccountCode: "51400",
		},
		{
			Name:        "주유소 → 차량유지비",
			Priority:    8,
			Conditions:  model.RuleConditions{MCCCodes: []string{"5541", "5542"}},
			AccountCode: "51900",
		},
		{
			Name:        "항공사 → 여비교통비",
			Priority:    7,
			Conditions:  model.RuleConditions{MCCCodes: []string{"3000", "3001", "3002", "4511"}},
			AccountCode: "51200",
		},
		{
			Name:        "호텔/숙박 → 여비교통비",
			Priority:    7,
			Conditions:  model.RuleConditions{MCCCodes: []string{"7011", "7012"}},
			AccountCode: "51200",
		},
		{
			Name:        "택시 → 여비교통비",
			Priority:    6,
			Conditions:  model.RuleConditions{MCCCodes: []string{"4121"}},
			AccountCode: "51200",
		},
		{
			Name:        "서점/도서 → 도서인쇄비",
			Priority:    5,
			Conditions:  model.RuleConditions{MCCCodes: []string{"5942", "5192"}},
			AccountCode: "52200",
		},
		{
			Name:        "사무용품점 → 사무용품비",
			Priority:    5,
			Conditions:  model.RuleConditions{MCCCodes: []string{"5943", "5111"}},
			AccountCode: "52300",
		},
		{
			Name:        "다이소/소모품 → 소모품비",
			Priority:    4,
			Conditions:  model.RuleConditions{MCCCodes: []string{"5331"}, MerchantNameContains: "다이소"},
			AccountCode: "52400",
		},
		{
			Name:        "통신요금 → 통신비",
			Priority:    4,
			Conditions:  model.RuleConditions{MCCCodes: []string{"4814", "4812"}},
			AccountCode: "51300",
		},
		{
			Name:        "IT/소프트웨어 → 지급수수료",
			Priority:    3,
			Conditions:  model.RuleConditions{MCCCodes: []string{"7372", "7379"}},
			AccountCode: "52500",
		},
		{
			Name:        "택배/운송 → 운반비",
			Priority:    3,
			Conditions:  model.RuleConditions{MCCCodes: []string{"4215", "4214"}},
			AccountCode: "52000",
		},
		{
			Name:        "병원/의료 → 복리후생비",
			Priority:    2,
			Conditions:  model.RuleConditions{MCCCodes: []string{"8011", "8021", "8031"}},
			AccountCode: "51100",
		},
		{
			Name:        "관공서/세금 → 세금과공과",
			Priority:    2,
			Conditions:  model.RuleConditions{MCCCodes: []string{"9311", "9222"}},
			AccountCode: "51500",
		},
	}
}
