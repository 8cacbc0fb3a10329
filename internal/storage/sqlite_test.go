package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sowonlabs/bunryu/internal/common"
	"github.com/sowonlabs/bunryu/internal/model"
	"github.com/sowonlabs/bunryu/internal/prompt"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() { _ = store.Close() })
	return store
}

func mustSaveAccount(t *testing.T, store *Store, code, name string, active bool) model.Account {
	t.Helper()

	a := model.Account{Code: code, Name: name, IsActive: active}
	require.NoError(t, store.SaveAccount(context.Background(), &a))
	return a
}

func TestMigrate_Idempotent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Migrate(context.Background()))
	require.NoError(t, store.Migrate(context.Background()))
}

func TestSaveAccount_DuplicateCode(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mustSaveAccount(t, store, "51100", "복리후생비", true)

	dup := model.Account{Code: "51100", Name: "다른이름", IsActive: true}
	err := store.SaveAccount(ctx, &dup)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrDuplicateEntry))
}

func TestSaveAccount_RequiresCodeAndName(t *testing.T) {
	store := newTestStore(t)

	err := store.SaveAccount(context.Background(), &model.Account{Name: "이름만"})
	assert.Error(t, err)

	err = store.SaveAccount(context.Background(), &model.Account{Code: "51100"})
	assert.Error(t, err)
}

func TestListAccounts_OrderAndActiveFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mustSaveAccount(t, store, "52700", "회의비", true)
	mustSaveAccount(t, store, "51100", "복리후생비", true)
	mustSaveAccount(t, store, "51200", "여비교통비", false)

	all, err := store.ListAccounts(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"51100", "51200", "52700"},
		[]string{all[0].Code, all[1].Code, all[2].Code})

	active, err := store.ListAccounts(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	for _, a := range active {
		assert.True(t, a.IsActive)
	}
}

func TestSetAccountActive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mustSaveAccount(t, store, "51100", "복리후생비", true)
	require.NoError(t, store.SetAccountActive(ctx, "51100", false))

	got, err := store.GetAccountByCode(ctx, "51100")
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	err = store.SetAccountActive(ctx, "00000", true)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestGetAccountByCode_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetAccountByCode(context.Background(), "99999")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestImportAccounts_SkipsDuplicatesAndContinues(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mustSaveAccount(t, store, "51100", "복리후생비", true)

	result, err := store.ImportAccounts(ctx, []model.Account{
		{Code: "51200", Name: "여비교통비"},
		{Code: "51100", Name: "복리후생비"},
		{Code: "52700", Name: "회의비"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Error, "중복 코드: 51100")

	all, err := store.ListAccounts(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRules_RoundTripAndOrdering(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	meals := mustSaveAccount(t, store, "51100", "복리후생비", true)
	mustSaveAccount(t, store, "52700", "회의비", true)

	maxAmount := 30000.0
	low := model.ClassificationRule{
		Name:     "소액 카페",
		Priority: 5,
		Conditions: model.RuleConditions{
			MCCCodes:  []string{"5814"},
			AmountMax: &maxAmount,
		},
		Account:  model.Account{Code: "52700"},
		IsActive: true,
	}
	high := model.ClassificationRule{
		Name:       "구내식당",
		Priority:   20,
		Conditions: model.RuleConditions{MerchantNameContains: "구내식당"},
		Account:    meals,
		IsActive:   true,
	}
	mid := model.ClassificationRule{
		Name:       "비활성 룰",
		Priority:   10,
		Conditions: model.RuleConditions{MCCCodes: []string{"5411"}},
		Account:    meals,
		IsActive:   false,
	}

	require.NoError(t, store.SaveRule(ctx, &low))
	require.NoError(t, store.SaveRule(ctx, &high))
	require.NoError(t, store.SaveRule(ctx, &mid))

	rules, err := store.ListRules(ctx, false)
	require.NoError(t, err)
	require.Len(t, rules, 3)
	assert.Equal(t, []string{"구내식당", "비활성 룰", "소액 카페"},
		[]string{rules[0].Name, rules[1].Name, rules[2].Name})

	// Conditions survive the JSON round trip, account comes back embedded.
	last := rules[2]
	require.NotNil(t, last.Conditions.AmountMax)
	assert.Equal(t, 30000.0, *last.Conditions.AmountMax)
	assert.Equal(t, []string{"5814"}, last.Conditions.MCCCodes)
	assert.Equal(t, "52700", last.Account.Code)
	assert.Equal(t, "회의비", last.Account.Name)

	active, err := store.ListRules(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "구내식당", active[0].Name)
	assert.Equal(t, "소액 카페", active[1].Name)
}

func TestSaveRule_UnknownAccountCode(t *testing.T) {
	store := newTestStore(t)

	err := store.SaveRule(context.Background(), &model.ClassificationRule{
		Name:    "고아 룰",
		Account: model.Account{Code: "99999"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestSetRuleActive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	account := mustSaveAccount(t, store, "51100", "복리후생비", true)
	r := model.ClassificationRule{Name: "룰", Account: account, IsActive: true}
	require.NoError(t, store.SaveRule(ctx, &r))

	require.NoError(t, store.SetRuleActive(ctx, r.ID, false))

	active, err := store.ListRules(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestConfirmedExamples_OnlyConfirmedAndLimited(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	account := mustSaveAccount(t, store, "51100", "복리후생비", true)

	var confirmedIDs []string
	for i := 0; i < 4; i++ {
		tx := model.Transaction{MerchantName: "스타벅스", MCCCode: "5814", Amount: 6500}
		require.NoError(t, store.SaveTransaction(ctx, &tx))

		rec := model.ClassificationRecord{
			TransactionID: tx.ID,
			AccountID:     account.ID,
			Confidence:    0.9,
			Method:        model.MethodAI,
		}
		require.NoError(t, store.SaveResult(ctx, &rec))
		if i < 3 {
			confirmedIDs = append(confirmedIDs, rec.ID)
		}
	}
	for _, id := range confirmedIDs {
		require.NoError(t, store.ConfirmResult(ctx, id))
	}

	examples, err := store.RecentConfirmedExamples(ctx, 10)
	require.NoError(t, err)
	require.Len(t, examples, 3, "unconfirmed results never become examples")
	for _, ex := range examples {
		assert.Equal(t, "스타벅스", ex.MerchantName)
		assert.Equal(t, "5814", ex.MCCCode)
		assert.Equal(t, "51100", ex.AccountCode)
		assert.Equal(t, "복리후생비", ex.AccountName)
	}

	limited, err := store.RecentConfirmedExamples(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestConfirmResult_NotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.ConfirmResult(context.Background(), "no-such-id")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestGetStats(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	meals := mustSaveAccount(t, store, "51100", "복리후생비", true)
	travel := mustSaveAccount(t, store, "51200", "여비교통비", true)

	save := func(accountID string, amount, confidence float64, method model.Method, confirmed bool) {
		tx := model.Transaction{MerchantName: "상점", Amount: amount}
		require.NoError(t, store.SaveTransaction(ctx, &tx))
		rec := model.ClassificationRecord{
			TransactionID: tx.ID,
			AccountID:     accountID,
			Confidence:    confidence,
			Method:        method,
		}
		require.NoError(t, store.SaveResult(ctx, &rec))
		if confirmed {
			require.NoError(t, store.ConfirmResult(ctx, rec.ID))
		}
	}

	save(meals.ID, 10000, 1.0, model.MethodRule, true)
	save(meals.ID, 20000, 0.8, model.MethodAI, true)
	save(travel.ID, 50000, 0.6, model.MethodAI, false)
	save(meals.ID, 5000, 1.0, model.MethodRule, false)

	stats, err := store.GetStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalTransactions)
	assert.Equal(t, 2, stats.ConfirmedCount)
	assert.Equal(t, 2, stats.RuleCount)
	assert.Equal(t, 2, stats.AICount)
	assert.InDelta(t, 0.5, stats.ConfirmationRate, 1e-9)
	assert.InDelta(t, 0.85, stats.AvgConfidence, 1e-9)

	require.Len(t, stats.TopAccounts, 2)
	assert.Equal(t, "51100", stats.TopAccounts[0].Code)
	assert.Equal(t, 3, stats.TopAccounts[0].Count)
	assert.InDelta(t, 35000, stats.TopAccounts[0].TotalAmount, 1e-9)
	assert.Equal(t, "51200", stats.TopAccounts[1].Code)
}

func TestPromptTemplates_DefaultsThenOverrideThenReset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	got, err := store.GetPromptTemplates(ctx)
	require.NoError(t, err)
	assert.Equal(t, prompt.DefaultSystemPrompt, got.SystemPrompt)
	assert.Equal(t, prompt.DefaultUserPrompt, got.UserPrompt)

	custom := model.PromptTemplates{
		SystemPrompt: "커스텀 시스템 {{accounts}}",
		UserPrompt:   "커스텀 유저 {{merchant_name}}",
	}
	require.NoError(t, store.SetPromptTemplates(ctx, custom))

	got, err = store.GetPromptTemplates(ctx)
	require.NoError(t, err)
	assert.Equal(t, custom, got)

	// Upsert replaces rather than duplicating.
	custom.SystemPrompt = "두번째 시스템"
	require.NoError(t, store.SetPromptTemplates(ctx, custom))
	got, err = store.GetPromptTemplates(ctx)
	require.NoError(t, err)
	assert.Equal(t, "두번째 시스템", got.SystemPrompt)

	require.NoError(t, store.ResetPromptTemplates(ctx))
	got, err = store.GetPromptTemplates(ctx)
	require.NoError(t, err)
	assert.Equal(t, prompt.DefaultSystemPrompt, got.SystemPrompt)
}

func TestSetPromptTemplates_RejectsEmpty(t *testing.T) {
	store := newTestStore(t)

	err := store.SetPromptTemplates(context.Background(), model.PromptTemplates{UserPrompt: "u"})
	assert.Error(t, err)
}

func TestSaveTransaction_RejectsNonPositiveAmount(t *testing.T) {
	store := newTestStore(t)

	err := store.SaveTransaction(context.Background(), &model.Transaction{MerchantName: "상점", Amount: 0})
	assert.Error(t, err)
}
