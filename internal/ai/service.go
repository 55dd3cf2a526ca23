package ai

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Prasannaverse13/GeminiSwap-AI-Navigator/internal/cache"
	"github.com/Prasannaverse13/GeminiSwap-AI-Navigator/internal/models"
	"github.com/sirupsen/logrus"
)

// Source reports where an analysis came from.
type Source string

const (
	SourceModel Source = "model"
	SourceCache Source = "cache"
	SourceMock  Source = "mock"
)

// Records is the slice of the record store the service writes through.
type Records interface {
	TokenBySymbol(symbol string) (models.Token, bool)
	CreateAIAnalysis(a models.AIAnalysis) models.AIAnalysis
}

// Result pairs an analysis with its provenance.
type Result struct {
	Response *AnalysisResponse
	Source   Source
}

// Service runs the full insights pipeline: eligibility gate, stale-window
// cache, model call, record persistence, and the deterministic mock
// fallback. Upstream and extraction failures never surface to the caller;
// only an invalid request errors.
type Service struct {
	advisor *Advisor
	cache   cache.ResponseCache
	records Records
	logger  *logrus.Logger
}

// NewService wires the pipeline. advisor may be nil (no API key), in which
// case every eligible request is answered by the mock.
func NewService(advisor *Advisor, rc cache.ResponseCache, records Records, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
	}
	return &Service{advisor: advisor, cache: rc, records: records, logger: logger}
}

// Analyze answers an analysis request. The flow is cache → model → mock;
// only a successful model call is cached and persisted.
func (s *Service) Analyze(ctx context.Context, req AnalysisRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	key := req.CacheKey()
	if s.cache != nil {
		if b, err := s.cache.Get(ctx, key); err == nil {
			var cached AnalysisResponse
			if err := json.Unmarshal(b, &cached); err == nil {
				return &Result{Response: &cached, Source: SourceCache}, nil
			}
			s.logger.WithField("key", key).Warn("discarding undecodable cached analysis")
		} else if !errors.Is(err, cache.ErrMiss) {
			s.logger.WithError(err).Warn("analysis cache lookup failed")
		}
	}

	if s.advisor == nil {
		return &Result{Response: MockAnalysis(req), Source: SourceMock}, nil
	}

	resp, err := s.advisor.Analyze(ctx, req)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"from": req.FromToken,
			"to":   req.ToToken,
		}).Warn("model analysis failed, serving mock")
		return &Result{Response: MockAnalysis(req), Source: SourceMock}, nil
	}

	s.persist(req, resp)

	if s.cache != nil {
		if b, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, key, b); err != nil {
				s.logger.WithError(err).Warn("failed to cache analysis")
			}
		}
	}

	return &Result{Response: resp, Source: SourceModel}, nil
}

// persist records the text parts of a successful model call. Token ids
// resolve through the store; unknown symbols keep a zero id.
func (s *Service) persist(req AnalysisRequest, resp *AnalysisResponse) {
	if s.records == nil {
		return
	}

	var fromID, toID int
	if t, ok := s.records.TokenBySymbol(req.FromToken); ok {
		fromID = t.ID
	}
	if t, ok := s.records.TokenBySymbol(req.ToToken); ok {
		toID = t.ID
	}

	s.records.CreateAIAnalysis(models.AIAnalysis{
		FromTokenID:      fromID,
		ToTokenID:        toID,
		Amount:           req.Amount,
		Summary:          resp.Summary,
		Insights:         resp.Insights,
		MarketConditions: resp.MarketConditions,
	})
}
