// Package reconcile maps an AI-returned account reference back to an
// authoritative account record.
package reconcile

import (
	"fmt"
	"strings"

	"github.com/sowonlabs/bunryu/internal/model"
)

// NotFoundError indicates the parsed account reference matched no active
// account by code or by name substring. Distinct from a parse failure: the
// response was syntactically valid but points at a phantom account.
type NotFoundError struct {
	AccountCode string
	AccountName string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("account %q (%s) not found among active accounts", e.AccountName, e.AccountCode)
}

// Reconcile validates a parsed result against the active account list.
//
// An exact code match is accepted as-is. Otherwise the first active account
// whose name contains the returned account name (in account-list order) is
// taken and its authoritative code and name overwrite the result; models
// occasionally paraphrase account names or use slightly stale codes, and
// the substring fallback recovers those near-misses without a second model
// call. No match at all is a hard failure.
func Reconcile(result model.ClassifyResult, accounts []model.Account) (model.ClassifyResult, error) {
	for _, a := range accounts {
		if a.IsActive && a.Code == result.AccountCode {
			return result, nil
		}
	}

	if result.AccountName != "" {
		for _, a := range accounts {
			if a.IsActive && strings.Contains(a.Name, result.AccountName) {
				result.AccountCode = a.Code
				result.AccountName = a.Name
				return result, nil
			}
		}
	}

	return model.ClassifyResult{}, &NotFoundError{
		AccountCode: result.AccountCode,
		AccountName: result.AccountName,
	}
}
