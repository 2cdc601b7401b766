package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"interest-calc/domain"
	"interest-calc/repository"
)

// InterestService runs the calculators behind the HTTP API, caching
// compound results in a CacheRepository.
type InterestService struct {
	cache  repository.CacheRepository
	ttl    time.Duration
	logger *slog.Logger
}

// NewInterestService creates an InterestService. Compound results are
// cached for ttl; a nil cache disables caching.
func NewInterestService(
	cache repository.CacheRepository,
	ttl time.Duration,
	logger *slog.Logger,
) *InterestService {
	if logger == nil {
		logger = slog.Default()
	}
	return &InterestService{cache: cache, ttl: ttl, logger: logger}
}

// Compound calculates the future value of input and the interest earned.
func (s *InterestService) Compound(
	ctx context.Context,
	input domain.CompoundInput,
) (domain.CompoundResult, error) {
	key := compoundKey(input)
	if result, ok := s.cached(ctx, key); ok {
		return result, nil
	}

	fv, err := CompoundInterest(input.Principal, input.Rate, input.Time, input.CompoundingFrequency)
	if err != nil {
		return domain.CompoundResult{}, err
	}
	result := domain.CompoundResult{
		FutureValue: fv,
		Interest:    fv - input.Principal,
	}

	// a cache failure never fails the calculation
	s.store(ctx, key, result)
	return result, nil
}

// CompoundValues is Compound for untyped inputs; see CompoundInterestValues.
func (s *InterestService) CompoundValues(
	ctx context.Context,
	principal, rate, time, frequency any,
) (domain.CompoundResult, error) {
	input, err := compoundInput(principal, rate, time, frequency)
	if err != nil {
		return domain.CompoundResult{}, err
	}
	return s.Compound(ctx, input)
}

// Simple validates input and calculates simple interest.
func (s *InterestService) Simple(input domain.SimpleInput) (domain.SimpleResult, error) {
	if err := ValidateSimple(input); err != nil {
		return domain.SimpleResult{}, err
	}
	result := SimpleInterest(input)
	if math.IsInf(result.TotalAmount, 0) || math.IsNaN(result.TotalAmount) {
		return domain.SimpleResult{}, valueError(FieldTotalAmount, msgNotRepresentable)
	}
	return result, nil
}

func (s *InterestService) cached(ctx context.Context, key string) (domain.CompoundResult, bool) {
	if s.cache == nil {
		return domain.CompoundResult{}, false
	}
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache lookup failed", "key", key, "error", err)
		return domain.CompoundResult{}, false
	}
	if !ok {
		return domain.CompoundResult{}, false
	}
	var result domain.CompoundResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		s.logger.Warn("discarding malformed cache entry", "key", key, "error", err)
		return domain.CompoundResult{}, false
	}
	s.logger.Debug("compound result served from cache", "key", key)
	return result, true
}

func (s *InterestService) store(ctx context.Context, key string, result domain.CompoundResult) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		s.logger.Warn("encoding cache entry failed", "key", key, "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.ttl); err != nil {
		s.logger.Warn("cache store failed", "key", key, "error", err)
	}
}

func compoundKey(input domain.CompoundInput) string {
	return fmt.Sprintf("compound:%s:%s:%s:%d",
		strconv.FormatFloat(input.Principal, 'g', -1, 64),
		strconv.FormatFloat(input.Rate, 'g', -1, 64),
		strconv.FormatFloat(input.Time, 'g', -1, 64),
		input.CompoundingFrequency,
	)
}
