package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/conversn-io/seniorsimple-sub003/internal/calculation"
	"github.com/conversn-io/seniorsimple-sub003/internal/config"
	"github.com/conversn-io/seniorsimple-sub003/internal/domain"
)

// PlanIDHeader carries the identifier assigned to each computed plan response.
const PlanIDHeader = "X-Plan-ID"

// RMDResponse is the body of GET /api/rmd.
type RMDResponse struct {
	RequiredMinimumDistribution decimal.Decimal `json:"requiredMinimumDistribution"`
	Divisor                     decimal.Decimal `json:"divisor"`
	RMDStartAge                 int             `json:"rmdStartAge"`
}

// TaxResponse is the body of GET /api/tax.
type TaxResponse struct {
	FilingStatus      domain.FilingStatus `json:"filingStatus"`
	StandardDeduction decimal.Decimal     `json:"standardDeduction"`
	TaxableIncome     decimal.Decimal     `json:"taxableIncome"`
	TaxOwed           decimal.Decimal     `json:"taxOwed"`
	MarginalRate      decimal.Decimal     `json:"marginalRate"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var in domain.PlanningInput
	if err := decodeBody(w, r, &in); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.parser.ValidatePlanningInput(&in); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	planner := calculation.NewPlannerWithRules(s.engine.BaseRules, s.engine.Logger)
	result := planner.PlanWithdrawals(in)

	id := uuid.NewString()
	PlansComputed.WithLabelValues("plan").Inc()
	PlanYears.Observe(float64(len(result.YearlyWithdrawals)))
	s.logger.Info("plan computed",
		zap.String("plan_id", id),
		zap.Int("years", len(result.YearlyWithdrawals)),
		zap.Int("shortfall_years", result.YearsWithShortfall))

	w.Header().Set(PlanIDHeader, id)
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var cfg domain.Configuration
	if err := decodeBody(w, r, &cfg); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.parser.ValidateConfiguration(&cfg); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	comparison, err := s.engine.RunPlans(r.Context(), &cfg)
	if err != nil {
		s.logger.Error("compare failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	id := uuid.NewString()
	PlansComputed.WithLabelValues("compare").Add(float64(len(comparison.Plans)))
	for _, p := range comparison.Plans {
		PlanYears.Observe(float64(len(p.Result.YearlyWithdrawals)))
	}
	s.logger.Info("comparison computed",
		zap.String("plan_id", id),
		zap.Int("plans", len(comparison.Plans)),
		zap.String("recommended", comparison.Recommended))

	w.Header().Set(PlanIDHeader, id)
	s.writeJSON(w, http.StatusOK, comparison)
}

func (s *Server) handleRMD(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	balance, err := requiredDecimal(q.Get("balance"), "balance")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	age, err := requiredInt(q.Get("age"), "age")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if balance.IsNegative() || age < 0 {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("%w: balance and age cannot be negative", config.ErrInvalidInput).Error())
		return
	}

	startAge := s.engine.BaseRules.RMDStartAge
	if v := q.Get("startAge"); v != "" {
		if startAge, err = requiredInt(v, "startAge"); err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	calc := calculation.NewRMDCalculator(startAge)
	resp := RMDResponse{
		RequiredMinimumDistribution: calc.RequiredMinimumDistribution(balance, age),
		RMDStartAge:                 calc.GetRMDAge(),
	}
	if calc.IsRMDYear(age) {
		resp.Divisor = calculation.DivisorFor(age)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTax(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	income, err := requiredDecimal(q.Get("income"), "income")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	status := domain.Single
	if v := q.Get("status"); v != "" {
		if status, err = domain.ParseFilingStatus(v); err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	tc := calculation.NewTaxCalculator(s.engine.BaseRules)
	s.writeJSON(w, http.StatusOK, TaxResponse{
		FilingStatus:      status,
		StandardDeduction: tc.StandardDeduction(status),
		TaxableIncome:     tc.TaxableIncome(income, status),
		TaxOwed:           tc.TaxOwed(income, status),
		MarginalRate:      tc.MarginalRate(income, status),
	})
}

var errMissingParam = errors.New("missing query parameter")

func requiredDecimal(raw, name string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w %q", errMissingParam, name)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s must be a number", config.ErrInvalidInput, name)
	}
	return d, nil
}

func requiredInt(raw, name string) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w %q", errMissingParam, name)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", config.ErrInvalidInput, name)
	}
	return n, nil
}
