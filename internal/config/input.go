package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/conversn-io/seniorsimple-sub003/internal/domain"
	"github.com/conversn-io/seniorsimple-sub003/pkg/dateutil"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrInvalidInput marks configuration rejected by validation.
var ErrInvalidInput = errors.New("invalid input")

// MaxHorizonYears is the longest horizon a plan file may request.
const MaxHorizonYears = domain.MaxHorizonYears

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML, JSON or TOML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := readDocument(filename)
	if err != nil {
		return nil, err
	}
	return ip.Parse(data)
}

// readDocument returns the file as YAML. TOML files are decoded and
// re-emitted so a single set of yaml tags and decode hooks covers every format.
func readDocument(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	if !strings.EqualFold(filepath.Ext(filename), ".toml") {
		return data, nil
	}

	var doc map[string]interface{}
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert TOML: %w", err)
	}
	return out, nil
}

// Parse decodes and validates a configuration document.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// LoadRulesFile loads a standalone tax rules document.
func (ip *InputParser) LoadRulesFile(filename string) (*domain.TaxRulesInput, error) {
	data, err := readDocument(filename)
	if err != nil {
		return nil, err
	}

	var rules domain.TaxRulesInput
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.ValidateTaxRules(&rules); err != nil {
		return nil, fmt.Errorf("tax rules validation failed: %w", err)
	}
	return &rules, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	plans := config.AllPlans()
	if len(plans) == 0 {
		return fmt.Errorf("%w: no planning block or plans provided", ErrInvalidInput)
	}

	if config.TaxRules != nil {
		if err := ip.ValidateTaxRules(config.TaxRules); err != nil {
			return fmt.Errorf("tax_rules: %w", err)
		}
	}

	seen := make(map[string]bool, len(plans))
	for i, plan := range plans {
		if plan.Name == "" {
			return fmt.Errorf("%w: plan %d has no name", ErrInvalidInput, i)
		}
		if seen[plan.Name] {
			return fmt.Errorf("%w: duplicate plan name %q", ErrInvalidInput, plan.Name)
		}
		seen[plan.Name] = true

		if err := ip.ValidatePlanningInput(&plan.Planning); err != nil {
			return fmt.Errorf("plan %q validation failed: %w", plan.Name, err)
		}
		if plan.TaxRules != nil {
			if err := ip.ValidateTaxRules(plan.TaxRules); err != nil {
				return fmt.Errorf("plan %q tax_rules: %w", plan.Name, err)
			}
		}
	}

	return nil
}

// ValidatePlanningInput rejects values the calculation core would otherwise clamp.
func (ip *InputParser) ValidatePlanningInput(in *domain.PlanningInput) error {
	if in.CurrentAge < 0 || in.CurrentAge > 120 {
		return fmt.Errorf("%w: current age must be between 0 and 120", ErrInvalidInput)
	}
	if in.HorizonYears < 0 || in.HorizonYears > MaxHorizonYears {
		return fmt.Errorf("%w: horizon years must be between 0 and %d", ErrInvalidInput, MaxHorizonYears)
	}
	if in.FilingStatus != "" && !in.FilingStatus.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidInput, domain.ErrUnknownFilingStatus, in.FilingStatus)
	}
	if in.DesiredAnnualIncome.IsNegative() {
		return fmt.Errorf("%w: desired annual income cannot be negative", ErrInvalidInput)
	}
	if in.Accounts.TraditionalBalance.IsNegative() {
		return fmt.Errorf("%w: traditional balance cannot be negative", ErrInvalidInput)
	}
	if in.Accounts.RothBalance.IsNegative() {
		return fmt.Errorf("%w: Roth balance cannot be negative", ErrInvalidInput)
	}
	if in.Accounts.TaxableBalance.IsNegative() {
		return fmt.Errorf("%w: taxable balance cannot be negative", ErrInvalidInput)
	}
	if in.BirthYear < 0 || in.StartYear < 0 {
		return fmt.Errorf("%w: birth and start years cannot be negative", ErrInvalidInput)
	}
	if in.BirthYear > 0 && in.StartYear > 0 {
		// current age may lag the year-end age until the birthday
		implied := dateutil.BirthYearFromAge(in.CurrentAge, in.StartYear)
		if implied != in.BirthYear && implied != in.BirthYear+1 {
			return fmt.Errorf("%w: born %d means age %d by the end of %d, not %d",
				ErrInvalidInput, in.BirthYear, dateutil.AgeAtYearEnd(in.BirthYear, in.StartYear), in.StartYear, in.CurrentAge)
		}
	}
	return nil
}

// ValidateTaxRules validates a rules override document.
func (ip *InputParser) ValidateTaxRules(rules *domain.TaxRulesInput) error {
	schedules := []struct {
		label    string
		std      *decimal.Decimal
		brackets []domain.TaxBracket
	}{
		{"single", rules.StandardDeductionSingle, rules.BracketsSingle},
		{"joint", rules.StandardDeductionMFJ, rules.BracketsMFJ},
		{"separate", rules.StandardDeductionMFS, rules.BracketsMFS},
	}
	for _, s := range schedules {
		if s.std != nil && s.std.IsNegative() {
			return fmt.Errorf("%w: %s standard deduction cannot be negative", ErrInvalidInput, s.label)
		}
		if err := validateBrackets(s.brackets); err != nil {
			return fmt.Errorf("%s brackets: %w", s.label, err)
		}
	}

	if rules.RMDStartAge != nil && (*rules.RMDStartAge < 0 || *rules.RMDStartAge > 120) {
		return fmt.Errorf("%w: RMD start age must be between 0 and 120", ErrInvalidInput)
	}
	if f := rules.AssumedGainsFraction; f != nil && (f.IsNegative() || f.GreaterThan(decimal.NewFromInt(1))) {
		return fmt.Errorf("%w: assumed gains fraction must be between 0 and 1", ErrInvalidInput)
	}
	return nil
}

// validateBrackets checks a schedule starts at zero, is contiguous with
// ascending bounds and ends with the only unbounded bracket.
func validateBrackets(brackets []domain.TaxBracket) error {
	if len(brackets) == 0 {
		return nil
	}
	if !brackets[0].Min.IsZero() {
		return fmt.Errorf("%w: first bracket must start at 0", ErrInvalidInput)
	}
	one := decimal.NewFromInt(1)
	last := len(brackets) - 1
	for i, b := range brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(one) {
			return fmt.Errorf("%w: bracket %d rate must be between 0 and 1", ErrInvalidInput, i)
		}
		if b.Unbounded() != (i == last) {
			return fmt.Errorf("%w: only the last bracket may be unbounded", ErrInvalidInput)
		}
		if !b.Unbounded() && b.Max.LessThanOrEqual(b.Min) {
			return fmt.Errorf("%w: bracket %d max must exceed min", ErrInvalidInput, i)
		}
		if i > 0 && !b.Min.Equal(brackets[i-1].Max) {
			return fmt.Errorf("%w: bracket %d must start where bracket %d ends", ErrInvalidInput, i, i-1)
		}
	}
	return nil
}
