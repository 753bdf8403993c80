package billing

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/labops/labctl/model"
)

// tagSuffixPattern matches the date suffix this tool appends to account
// display names, e.g. "-202602181530".
var tagSuffixPattern = regexp.MustCompile(`-\d{12}$`)

const tagSuffixFormat = "-200601021504"

// SelectBestAccount picks the account to link, designed for multi-day
// workshops where new credits are redeemed daily:
//  1. an account not yet linked to any project (freshest credits), trial
//     accounts first;
//  2. an account tagged by a previous run, newest tag first;
//  3. the first open account.
func SelectBestAccount(accounts []model.BillingAccount) model.BillingAccount {
	var unlinked []model.BillingAccount
	for _, acct := range accounts {
		if acct.LinkedProjects == 0 {
			unlinked = append(unlinked, acct)
		}
	}
	if len(unlinked) > 0 {
		sort.SliceStable(unlinked, func(i, j int) bool {
			return isTrialAccount(unlinked[i]) && !isTrialAccount(unlinked[j])
		})
		return unlinked[0]
	}

	var tagged []model.BillingAccount
	for _, acct := range accounts {
		if tagSuffixPattern.MatchString(acct.DisplayName) {
			tagged = append(tagged, acct)
		}
	}
	if len(tagged) > 0 {
		sort.SliceStable(tagged, func(i, j int) bool {
			return tagSuffix(tagged[i]) > tagSuffix(tagged[j])
		})
		return tagged[0]
	}

	return accounts[0]
}

// tagDisplayName appends the date suffix unless the name already carries one.
func tagDisplayName(displayName string, now time.Time) (string, bool) {
	if tagSuffixPattern.MatchString(displayName) {
		return displayName, false
	}
	return displayName + now.Format(tagSuffixFormat), true
}

func isTrialAccount(account model.BillingAccount) bool {
	return strings.Contains(strings.ToLower(account.DisplayName), "trial billing account")
}

func tagSuffix(account model.BillingAccount) string {
	return tagSuffixPattern.FindString(account.DisplayName)
}
