// Package prompt builds the system and user prompts sent to the model.
//
// Templates are plain strings with {{key}} placeholders, owned by
// configuration. The resolver substitutes values literally and always
// appends the JSON response format instruction to the system prompt; that
// instruction is never part of an editable template.
package prompt

// DefaultSystemPrompt is the built-in system prompt template.
const DefaultSystemPrompt = `당신은 기업 회계 전문가입니다. 주어진 거래 내역을 분석하여 해당 회사의 계정과목 체계에 맞는 계정과목을 추천하세요.

반드시 아래 회사 계정과목 목록에서만 선택해야 합니다.

회사 계정과목 목록:
{{accounts_list}}{{examples}}`

// DefaultUserPrompt is the built-in user prompt template.
const DefaultUserPrompt = `다음 거래를 분류해주세요:
- 가맹점: {{merchant_name}}
- 업종코드(MCC): {{mcc_code}}
- 금액: {{amount}}
- 거래일: {{transaction_date}}
- 적요: {{description}}`

// FormatInstruction is appended to every resolved system prompt so the
// response parser can rely on the model being told the exact JSON shape.
// It is not editable through prompt settings.
const FormatInstruction = `

반드시 아래 JSON 형식으로만 응답하세요. 다른 텍스트는 포함하지 마세요:
{"account_code": "코드", "account_name": "계정과목명", "confidence": 0.0~1.0, "reason": "분류 사유"}`

// Fallback literals for fields absent from the transaction.
const (
	fallbackUnknown = "미상"
	fallbackNone    = "없음"
)

// Placeholder documents a template variable for the prompts command output.
type Placeholder struct {
	Key         string
	Description string
	Target      string // "system" or "user"
}

// Placeholders lists every substitution variable the resolver understands.
var Placeholders = []Placeholder{
	{Key: "{{accounts_list}}", Description: "계정과목 목록 JSON", Target: "system"},
	{Key: "{{examples}}", Description: "과거 확정된 분류 사례", Target: "system"},
	{Key: "{{merchant_name}}", Description: "가맹점명", Target: "user"},
	{Key: "{{mcc_code}}", Description: "업종코드 (MCC)", Target: "user"},
	{Key: "{{amount}}", Description: "금액 (원)", Target: "user"},
	{Key: "{{transaction_date}}", Description: "거래일", Target: "user"},
	{Key: "{{description}}", Description: "적요", Target: "user"},
}
