package credit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"lendgate/internal/audit"
	"lendgate/internal/credit/metrics"
	"lendgate/internal/fraud"
	"lendgate/internal/identity"
	"lendgate/internal/merchant"
	"lendgate/internal/policy"
	"lendgate/internal/scoring"
	"lendgate/pkg/domain"
	dErrors "lendgate/pkg/domain-errors"
	"lendgate/pkg/platform/sentinel"
	"lendgate/pkg/requestcontext"
)

// Service runs one eligibility evaluation end to end. Rejections the
// business understands (failed verification, fraud, price limits, thin
// credit files) come back as Decision values; only infrastructure and
// validation problems surface as errors.
type Service struct {
	merchants merchant.Directory
	identity  *identity.Verifier
	fraud     *fraud.Detector
	policies  policy.Store
	history   HistoryStore
	auditor   AuditSink
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func NewService(
	merchants merchant.Directory,
	verifier *identity.Verifier,
	detector *fraud.Detector,
	policies policy.Store,
	history HistoryStore,
	auditor AuditSink,
	logger *slog.Logger,
	m *metrics.Metrics,
) (*Service, error) {
	if merchants == nil || verifier == nil || detector == nil || policies == nil || history == nil {
		return nil, errors.New("credit: all pipeline dependencies are required")
	}
	return &Service{
		merchants: merchants,
		identity:  verifier,
		fraud:     detector,
		policies:  policies,
		history:   history,
		auditor:   auditor,
		logger:    logger,
		metrics:   m,
	}, nil
}

// Evaluate runs the pipeline: validation, identity, fraud, scoring, policy
// clamping, then decision assembly. Every terminal decision is audited.
func (s *Service) Evaluate(ctx context.Context, req EligibilityRequest) (*Decision, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveEvaluateLatency(time.Since(start)) }()

	checkID := domain.NewCheckID()
	logger := s.logger.With(
		"check_id", checkID.String(),
		"request_id", requestcontext.RequestID(ctx),
		"merchant_id", req.MerchantID,
	)

	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}

	// The check is recorded before screening so rapid retries count
	// against the velocity window even when this request is rejected.
	if err := s.history.RecordCheck(ctx, req.Customer.PhoneNumber.String()); err != nil {
		logger.Error("velocity record failed", "error", err)
	}

	stageStart := time.Now()
	verification, err := s.identity.Verify(ctx, identity.Claims{
		NIN:      req.Customer.NIN,
		BVN:      req.Customer.BVN,
		FullName: req.Customer.FullName,
		Phone:    req.Customer.PhoneNumber,
	})
	s.metrics.ObserveStageLatency("identity", time.Since(stageStart))
	if err != nil {
		return nil, fmt.Errorf("identity verification: %w", err)
	}
	if !verification.Valid {
		logger.Info("identity verification failed",
			"nin_verified", verification.NINVerified,
			"name_match", verification.NameMatch)
		return s.reject(ctx, logger, checkID, req, ReasonIdentityVerificationFailed,
			"We could not verify the customer's identity. Please confirm the details and try again.",
			nil, nil), nil
	}

	stageStart = time.Now()
	risk, err := s.fraud.Detect(ctx, fraud.Subject{
		NIN:   req.Customer.NIN.String(),
		BVN:   req.Customer.BVN.String(),
		Phone: req.Customer.PhoneNumber.String(),
	})
	s.metrics.ObserveStageLatency("fraud", time.Since(stageStart))
	if err != nil {
		return nil, fmt.Errorf("fraud detection: %w", err)
	}
	if risk.IsFraud {
		logger.Info("fraud detected", "risk_score", risk.RiskScore, "reasons", risk.Reasons)
		return s.reject(ctx, logger, checkID, req, ReasonFraudDetected,
			"This application cannot proceed at this time.",
			nil, risk), nil
	}

	stageStart = time.Now()
	factors, err := s.gatherFactors(ctx, req, verification)
	if err != nil {
		return nil, err
	}
	score := scoring.CalculateScore(factors)
	base := scoring.MakeDecision(score, req.Product.Price)
	s.metrics.ObserveStageLatency("scoring", time.Since(stageStart))
	logger.Info("score computed", "score", score, "tier_decision", string(base.Decision))

	if base.Decision == scoring.DecisionRejected {
		return s.reject(ctx, logger, checkID, req, ReasonInsufficientCreditProfile,
			"The customer does not currently qualify for financing.",
			&score, risk), nil
	}

	stageStart = time.Now()
	final, err := s.applyPolicy(ctx, req, base)
	s.metrics.ObserveStageLatency("policy", time.Since(stageStart))
	if err != nil {
		return nil, err
	}

	if req.Product.Price > final.MaxDeviceValue {
		return s.reject(ctx, logger, checkID, req, ReasonPriceExceedsLimit,
			fmt.Sprintf("The device price exceeds the approved limit of %.2f.", final.MaxDeviceValue),
			&score, risk), nil
	}

	decision := &Decision{
		CheckID:  checkID,
		Status:   Status(final.Decision),
		Approved: true,
		Terms: &Terms{
			MaxDeviceValue: final.MaxDeviceValue,
			AllowedTenure:  final.AllowedTenure,
			MinDownPayment: final.MinDownPayment,
			InterestRate:   final.InterestRate,
			CreditRating:   final.CreditRating,
		},
		Score: &score,
	}
	s.audit(ctx, logger, decision, req, risk)
	s.metrics.IncrementOutcome(string(decision.Status), "")
	logger.Info("eligibility approved", "status", string(decision.Status), "score", score)
	return decision, nil
}

// validate checks the merchant and agent reference data. Failures here are
// caller errors, not decisions.
func (s *Service) validate(ctx context.Context, req EligibilityRequest) error {
	m, err := s.merchants.GetMerchant(ctx, req.MerchantID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "merchant not found")
		}
		return fmt.Errorf("merchant lookup: %w", err)
	}
	if !m.Active() {
		return dErrors.New(dErrors.CodeForbidden, "merchant account is not active")
	}
	if !m.PolicyApproved {
		return dErrors.New(dErrors.CodeForbidden, "merchant has no approved lending policy")
	}

	a, err := s.merchants.GetAgent(ctx, req.AgentID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "agent not found")
		}
		return fmt.Errorf("agent lookup: %w", err)
	}
	if a.MerchantID != req.MerchantID {
		return dErrors.New(dErrors.CodeForbidden, "agent does not belong to this merchant")
	}
	if a.Role != merchant.RoleAgent {
		return dErrors.New(dErrors.CodeForbidden, "caller is not authorized to submit checks")
	}
	return nil
}

// gatherFactors pulls the behavioral inputs and derives the five credit
// factors. Lookup failures are hard failures: scores must never be computed
// from silently missing data.
func (s *Service) gatherFactors(ctx context.Context, req EligibilityRequest, verification *identity.Result) (scoring.Factors, error) {
	phone := req.Customer.PhoneNumber.String()
	nin := req.Customer.NIN.String()

	ageMonths, err := s.history.PhoneAgeMonths(ctx, phone)
	if err != nil {
		return scoring.Factors{}, fmt.Errorf("phone age lookup: %w", err)
	}
	loans, err := s.history.LoanHistory(ctx, nin)
	if err != nil {
		return scoring.Factors{}, fmt.Errorf("loan history lookup: %w", err)
	}
	income, err := s.history.EstimatedIncome(ctx, nin)
	if err != nil {
		return scoring.Factors{}, fmt.Errorf("income lookup: %w", err)
	}
	stats, err := s.history.MerchantStats(ctx, req.MerchantID)
	if err != nil {
		return scoring.Factors{}, fmt.Errorf("merchant stats lookup: %w", err)
	}

	return scoring.Factors{
		IdentityConfidence: scoring.IdentityConfidence(
			verification.NINVerified,
			verification.BVNVerified,
			verification.NameMatch,
			verification.PhoneMatch,
		),
		PhoneStability:      scoring.PhoneStability(ageMonths),
		BNPLHistory:         scoring.BNPLHistory(loans.PriorLoans, loans.Defaults, loans.OnTimePayments),
		DevicePriceRatio:    scoring.DevicePriceRatio(req.Product.Price, income),
		MerchantRiskProfile: scoring.MerchantRiskProfile(stats.DefaultRate, stats.Volume),
	}, nil
}

// applyPolicy clamps the base terms with the merchant policy. A merchant
// without a configured policy keeps the base terms.
func (s *Service) applyPolicy(ctx context.Context, req EligibilityRequest, base scoring.Result) (scoring.Result, error) {
	pol, err := s.policies.Get(ctx, req.MerchantID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return base, nil
		}
		return scoring.Result{}, fmt.Errorf("policy lookup: %w", err)
	}
	return policy.Clamp(base, *pol, req.Product.Price), nil
}

func (s *Service) reject(
	ctx context.Context,
	logger *slog.Logger,
	checkID domain.CheckID,
	req EligibilityRequest,
	reason ReasonCode,
	message string,
	score *int,
	risk *fraud.CheckResult,
) *Decision {
	decision := &Decision{
		CheckID:    checkID,
		Status:     StatusRejected,
		Approved:   false,
		ReasonCode: reason,
		Message:    message,
		Score:      score,
	}
	s.audit(ctx, logger, decision, req, risk)
	s.metrics.IncrementOutcome(string(StatusRejected), string(reason))
	return decision
}

// audit records the terminal decision. Failures are logged and swallowed so
// an audit outage never blocks a point-of-sale decision.
func (s *Service) audit(ctx context.Context, logger *slog.Logger, decision *Decision, req EligibilityRequest, risk *fraud.CheckResult) {
	if s.auditor == nil {
		return
	}
	event := audit.DecisionEvent{
		CheckID:       decision.CheckID.String(),
		Timestamp:     requestcontext.Now(ctx),
		RequestID:     requestcontext.RequestID(ctx),
		MerchantID:    req.MerchantID,
		AgentID:       req.AgentID,
		SubjectIDHash: req.Customer.NIN.Hash(),
		ProductID:     req.Product.ID,
		Price:         req.Product.Price,
		Status:        string(decision.Status),
		ReasonCode:    string(decision.ReasonCode),
		Score:         decision.Score,
	}
	if risk != nil {
		event.RiskScore = risk.RiskScore
		event.RiskReasons = risk.Reasons
	}
	if err := s.auditor.Record(ctx, event); err != nil {
		logger.Error("audit record failed", "error", err)
	}
}
