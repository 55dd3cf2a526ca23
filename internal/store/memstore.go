package store

import (
	"sync"
	"time"

	"github.com/Prasannaverse13/GeminiSwap-AI-Navigator/internal/constants"
	"github.com/Prasannaverse13/GeminiSwap-AI-Navigator/internal/models"
	"github.com/sirupsen/logrus"
)

// MemStore holds all application records in process memory. It is built by
// the caller and passed to handlers; there is no package-level instance.
// Identifiers are monotonically increasing per entity type and never reused
// within a process lifetime.
type MemStore struct {
	mu sync.RWMutex

	tokens     map[int]models.Token
	routes     map[int]models.SwapRoute
	analyses   map[int]models.AIAnalysis
	settings   map[string]models.UserSettings // keyed by wallet address
	nextToken  int
	nextRoute  int
	nextAssay  int
	nextConfig int

	logger *logrus.Logger
}

// New creates a store seeded with the default token list.
func New(logger *logrus.Logger) *MemStore {
	if logger == nil {
		logger = logrus.New()
	}

	s := &MemStore{
		tokens:     make(map[int]models.Token),
		routes:     make(map[int]models.SwapRoute),
		analyses:   make(map[int]models.AIAnalysis),
		settings:   make(map[string]models.UserSettings),
		nextToken:  1,
		nextRoute:  1,
		nextAssay:  1,
		nextConfig: 1,
		logger:     logger,
	}

	for _, t := range constants.SeedTokens {
		s.CreateToken(models.Token{
			Address:  t.Address,
			Symbol:   t.Symbol,
			Name:     t.Name,
			Decimals: t.Decimals,
			LogoURL:  t.LogoURL,
			Testnet:  true,
		})
	}

	logger.WithField("tokens", len(s.tokens)).Debug("seeded in-memory store")
	return s
}

// Tokens returns all tokens ordered by id.
func (s *MemStore) Tokens() []models.Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Token, 0, len(s.tokens))
	for id := 1; id < s.nextToken; id++ {
		if t, ok := s.tokens[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

// TokenBySymbol finds a token by its symbol.
func (s *MemStore) TokenBySymbol(symbol string) (models.Token, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tokens {
		if t.Symbol == symbol {
			return t, true
		}
	}
	return models.Token{}, false
}

// CreateToken assigns the next token id and stores the record.
func (s *MemStore) CreateToken(t models.Token) models.Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = s.nextToken
	s.nextToken++
	s.tokens[t.ID] = t
	return t
}

// SwapRoutes returns all persisted routes for a token pair.
func (s *MemStore) SwapRoutes(fromTokenID, toTokenID int) []models.SwapRoute {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.SwapRoute, 0)
	for id := 1; id < s.nextRoute; id++ {
		r, ok := s.routes[id]
		if ok && r.FromTokenID == fromTokenID && r.ToTokenID == toTokenID {
			out = append(out, r)
		}
	}
	return out
}

// CreateSwapRoute stores a route record. Routes are never mutated.
func (s *MemStore) CreateSwapRoute(r models.SwapRoute) models.SwapRoute {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = s.nextRoute
	s.nextRoute++
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	s.routes[r.ID] = r
	return r
}

// AIAnalysis returns the first stored analysis for a token pair.
func (s *MemStore) AIAnalysis(fromTokenID, toTokenID int) (models.AIAnalysis, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for id := 1; id < s.nextAssay; id++ {
		a, ok := s.analyses[id]
		if ok && a.FromTokenID == fromTokenID && a.ToTokenID == toTokenID {
			return a, true
		}
	}
	return models.AIAnalysis{}, false
}

// CreateAIAnalysis appends an analysis record, stamping CreatedAt.
func (s *MemStore) CreateAIAnalysis(a models.AIAnalysis) models.AIAnalysis {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = s.nextAssay
	s.nextAssay++
	a.CreatedAt = time.Now().UTC()
	s.analyses[a.ID] = a
	return a
}

// UserSettings returns the settings for a wallet address.
func (s *MemStore) UserSettings(walletAddress string) (models.UserSettings, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.settings[walletAddress]
	return u, ok
}

// SaveUserSettings upserts settings keyed by wallet address. An existing
// record keeps its id; only the values and LastUpdated change.
func (s *MemStore) SaveUserSettings(u models.UserSettings) models.UserSettings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.settings[u.WalletAddress]; ok {
		u.ID = existing.ID
	} else {
		u.ID = s.nextConfig
		s.nextConfig++
	}
	u.LastUpdated = time.Now().UTC()
	s.settings[u.WalletAddress] = u
	return u
}
