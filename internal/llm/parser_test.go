package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClassification_BareObject(t *testing.T) {
	raw := `{"account_code": "51100", "account_name": "복리후생비", "confidence": 0.92, "reason": "카페 거래"}`

	result, err := ParseClassification(raw)
	require.NoError(t, err)
	assert.Equal(t, "51100", result.AccountCode)
	assert.Equal(t, "복리후생비", result.AccountName)
	assert.InDelta(t, 0.92, result.Confidence, 1e-9)
	assert.Equal(t, "카페 거래", result.Reason)
}

func TestParseClassification_SurroundingProse(t *testing.T) {
	raw := `분류 결과는 다음과 같습니다:
{"account_code": "51200", "account_name": "여비교통비", "confidence": 0.8, "reason": "항공권"}
참고하세요.`

	result, err := ParseClassification(raw)
	require.NoError(t, err)
	assert.Equal(t, "51200", result.AccountCode)
}

func TestParseClassification_FencedBlockPreferred(t *testing.T) {
	// A fenced block and a stray object disagree; the fenced one wins.
	raw := "```json\n" +
		`{"account_code": "51100", "account_name": "복리후생비", "confidence": 0.9, "reason": "fenced"}` +
		"\n```\n" +
		`{"account_code": "99999", "account_name": "잘못된계정", "confidence": 0.1, "reason": "stray"}`

	result, err := ParseClassification(raw)
	require.NoError(t, err)
	assert.Equal(t, "51100", result.AccountCode)
	assert.Equal(t, "fenced", result.Reason)
}

func TestParseClassification_UntaggedFence(t *testing.T) {
	raw := "```\n" +
		`{"account_code": "52300", "account_name": "사무용품비", "confidence": 0.7, "reason": "문구"}` +
		"\n```"

	result, err := ParseClassification(raw)
	require.NoError(t, err)
	assert.Equal(t, "52300", result.AccountCode)
}

func TestParseClassification_NoJSON(t *testing.T) {
	_, err := ParseClassification("죄송합니다, 분류할 수 없습니다.")
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "죄송합니다, 분류할 수 없습니다.", parseErr.RawText)
}

func TestParseClassification_MissingKeys(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "missing account_code", raw: `{"account_name": "복리후생비", "confidence": 0.9, "reason": "r"}`},
		{name: "empty account_code", raw: `{"account_code": "", "account_name": "복리후생비", "confidence": 0.9, "reason": "r"}`},
		{name: "missing account_name", raw: `{"account_code": "51100", "confidence": 0.9, "reason": "r"}`},
		{name: "missing confidence", raw: `{"account_code": "51100", "account_name": "복리후생비", "reason": "r"}`},
		{name: "missing reason", raw: `{"account_code": "51100", "account_name": "복리후생비", "confidence": 0.9}`},
		{name: "confidence wrong type", raw: `{"account_code": "51100", "account_name": "복리후생비", "confidence": "high", "reason": "r"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseClassification(tt.raw)
			require.Error(t, err)

			var parseErr *ParseError
			assert.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tt.raw, parseErr.RawText)
		})
	}
}

func TestParseClassification_ConfidencePassedThroughUnclamped(t *testing.T) {
	raw := `{"account_code": "51100", "account_name": "복리후생비", "confidence": 1.7, "reason": "r"}`

	result, err := ParseClassification(raw)
	require.NoError(t, err)
	assert.InDelta(t, 1.7, result.Confidence, 1e-9)
}

func TestParseClassification_InvalidFencedFallsBackToBrace(t *testing.T) {
	raw := "```json\nnot json at all\n```\n" +
		`{"account_code": "51400", "account_name": "접대비", "confidence": 0.6, "reason": "회식"}`

	result, err := ParseClassification(raw)
	require.NoError(t, err)
	assert.Equal(t, "51400", result.AccountCode)
}
