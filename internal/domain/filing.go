package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFilingStatus is returned when a filing status string cannot be parsed.
var ErrUnknownFilingStatus = errors.New("unknown filing status")

// FilingStatus selects which bracket table and standard deduction apply.
type FilingStatus string

const (
	Single                  FilingStatus = "single"
	MarriedFilingJointly    FilingStatus = "marriedFilingJointly"
	MarriedFilingSeparately FilingStatus = "marriedFilingSeparately"
)

// AllFilingStatuses lists every supported status in a stable order.
var AllFilingStatuses = []FilingStatus{Single, MarriedFilingJointly, MarriedFilingSeparately}

// filingAliases maps user-facing spellings to canonical statuses.
var filingAliases = map[string]FilingStatus{
	"single":                    Single,
	"s":                         Single,
	"marriedfilingjointly":      MarriedFilingJointly,
	"married_filing_jointly":    MarriedFilingJointly,
	"married-filing-jointly":    MarriedFilingJointly,
	"mfj":                       MarriedFilingJointly,
	"joint":                     MarriedFilingJointly,
	"marriedfilingseparately":   MarriedFilingSeparately,
	"married_filing_separately": MarriedFilingSeparately,
	"married-filing-separately": MarriedFilingSeparately,
	"mfs":                       MarriedFilingSeparately,
	"separate":                  MarriedFilingSeparately,
}

// ParseFilingStatus resolves a status name or alias, case-insensitively.
func ParseFilingStatus(s string) (FilingStatus, error) {
	if fs, ok := filingAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return fs, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFilingStatus, s)
}

// Valid reports whether fs is one of the canonical statuses.
func (fs FilingStatus) Valid() bool {
	switch fs {
	case Single, MarriedFilingJointly, MarriedFilingSeparately:
		return true
	}
	return false
}

// Label returns a human readable name for reports.
func (fs FilingStatus) Label() string {
	switch fs {
	case Single:
		return "Single"
	case MarriedFilingJointly:
		return "Married Filing Jointly"
	case MarriedFilingSeparately:
		return "Married Filing Separately"
	default:
		return string(fs)
	}
}

// UnmarshalText accepts any alias understood by ParseFilingStatus, and an
// empty string as the unset status that MarshalText emits for it.
// Both encoding/json and yaml.v3 route string scalars through it.
func (fs *FilingStatus) UnmarshalText(text []byte) error {
	if len(strings.TrimSpace(string(text))) == 0 {
		*fs = ""
		return nil
	}
	parsed, err := ParseFilingStatus(string(text))
	if err != nil {
		return err
	}
	*fs = parsed
	return nil
}

// MarshalText always emits the canonical name.
func (fs FilingStatus) MarshalText() ([]byte, error) {
	return []byte(fs), nil
}
