package swapsim

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Prasannaverse13/GeminiSwap-AI-Navigator/internal/constants"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Status is the transient state of the current operation.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusApproving Status = "approving"
	StatusApproved  Status = "approved"
	StatusSwapping  Status = "swapping"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// FailureMessage is the generic demo-mode failure reason shown for a
// rejected swap. It does not reflect a real cause.
const FailureMessage = "Insufficient gas"

// ErrBusy is returned when an operation is attempted while another is in
// flight. Such calls are no-ops.
var ErrBusy = errors.New("operation already in flight")

// TxStatus carries the current state and, once available, the transaction
// hash and failure reason.
type TxStatus struct {
	Status  Status `json:"status"`
	TxHash  string `json:"txHash,omitempty"`
	Message string `json:"message,omitempty"`
}

// SwapParams describes one swap execution request.
type SwapParams struct {
	FromToken         string
	ToToken           string
	Amount            string
	WalletAddress     string
	SlippageTolerance float64
	Deadline          int
	GasPreference     string
}

// SwapResult is the outcome of a simulated swap.
type SwapResult struct {
	Success         bool
	TxHash          string
	EstimatedOutput string
	Message         string
}

// Config tunes the simulation.
type Config struct {
	ApproveDelay time.Duration
	SwapDelay    time.Duration
	// SuccessRate is the probability a swap succeeds.
	SuccessRate float64
}

// DefaultConfig mirrors the demo behavior: visible delays and a 90%
// success rate.
func DefaultConfig() Config {
	return Config{
		ApproveDelay: 2 * time.Second,
		SwapDelay:    3 * time.Second,
		SuccessRate:  0.9,
	}
}

// Simulator stands in for the chain: it grants allowances and executes
// swaps with artificial delays and synthesized transaction hashes. A single
// operation may be in flight at a time.
type Simulator struct {
	mu       sync.Mutex
	status   TxStatus
	busy     bool
	approved map[string]decimal.Decimal // per-token high-water marks

	cfg     Config
	rng     Rand
	sleeper Sleeper
	logger  *logrus.Logger
}

// New builds a simulator. rng and sleeper are injectable so tests can pin
// outcomes and skip delays; nil selects the production implementations.
func New(cfg Config, rng Rand, sleeper Sleeper, logger *logrus.Logger) *Simulator {
	if cfg.SuccessRate <= 0 || cfg.SuccessRate > 1 {
		cfg.SuccessRate = DefaultConfig().SuccessRate
	}
	if rng == nil {
		rng = NewRand()
	}
	if sleeper == nil {
		sleeper = realSleeper{}
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Simulator{
		status:   TxStatus{Status: StatusIdle},
		approved: make(map[string]decimal.Decimal),
		cfg:      cfg,
		rng:      rng,
		sleeper:  sleeper,
		logger:   logger,
	}
}

// Status returns the current transient state.
func (s *Simulator) Status() TxStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Reset clears the transient status back to idle regardless of state.
// Approval high-water marks survive a reset.
func (s *Simulator) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.busy {
		s.status = TxStatus{Status: StatusIdle}
	}
}

// IsApproved reports whether the token's approved high-water mark covers
// the amount.
func (s *Simulator) IsApproved(token string, amount decimal.Decimal) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	mark, ok := s.approved[token]
	return ok && mark.GreaterThanOrEqual(amount)
}

// Approve simulates an allowance grant. It raises the token's high-water
// mark to at least amount and always succeeds (no injected failure path).
func (s *Simulator) Approve(ctx context.Context, token string, amount decimal.Decimal) (string, error) {
	if err := s.begin(StatusApproving); err != nil {
		return "", err
	}

	if err := s.sleeper.Sleep(ctx, s.cfg.ApproveDelay); err != nil {
		s.finish(TxStatus{Status: StatusFailed, Message: err.Error()})
		return "", err
	}

	txHash := s.newTxHash()

	s.mu.Lock()
	if mark, ok := s.approved[token]; !ok || amount.GreaterThan(mark) {
		s.approved[token] = amount
	}
	s.mu.Unlock()

	s.finish(TxStatus{Status: StatusApproved, TxHash: txHash})
	s.logger.WithFields(logrus.Fields{"token": token, "amount": amount.String()}).Info("token approved")
	return txHash, nil
}

// Swap simulates execution. It succeeds with the configured probability;
// either way the synthesized transaction hash is surfaced through the
// status.
func (s *Simulator) Swap(ctx context.Context, p SwapParams) (*SwapResult, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(p.Amount))
	if err != nil || !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be a positive decimal")
	}

	if err := s.begin(StatusSwapping); err != nil {
		return nil, err
	}

	if err := s.sleeper.Sleep(ctx, s.cfg.SwapDelay); err != nil {
		s.finish(TxStatus{Status: StatusFailed, Message: err.Error()})
		return nil, err
	}

	txHash := s.newTxHash()
	estimated := amount.Mul(decimal.NewFromInt(constants.DemoOutputRate)).StringFixed(2)

	if s.rng.Float64() < s.cfg.SuccessRate {
		s.finish(TxStatus{Status: StatusSucceeded, TxHash: txHash})
		s.logger.WithFields(logrus.Fields{
			"from": p.FromToken, "to": p.ToToken, "amount": p.Amount,
			"tx": constants.ExplorerURL("tx", txHash),
		}).Info("swap succeeded")
		return &SwapResult{Success: true, TxHash: txHash, EstimatedOutput: estimated}, nil
	}

	s.finish(TxStatus{Status: StatusFailed, TxHash: txHash, Message: FailureMessage})
	s.logger.WithFields(logrus.Fields{
		"from": p.FromToken, "to": p.ToToken, "txHash": txHash,
	}).Warn("swap rejected")
	return &SwapResult{Success: false, TxHash: txHash, EstimatedOutput: estimated, Message: FailureMessage}, nil
}

// begin claims the single in-flight slot and moves to the pending state.
func (s *Simulator) begin(pending Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return ErrBusy
	}
	s.busy = true
	s.status = TxStatus{Status: pending}
	return nil
}

func (s *Simulator) finish(final TxStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	s.status = final
}

// newTxHash synthesizes a 0x-prefixed 64-hex-digit transaction id.
func (s *Simulator) newTxHash() string {
	const hexDigits = "0123456789abcdef"
	var b strings.Builder
	b.Grow(66)
	b.WriteString("0x")
	for i := 0; i < 64; i++ {
		b.WriteByte(hexDigits[s.rng.Intn(16)])
	}
	return b.String()
}
