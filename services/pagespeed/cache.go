package pagespeed

import (
	"context"
	"encoding/json"
	"time"

	"outreach/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	cachePrefix = "pagespeed:"
	cacheTTL    = time.Hour
)

// Runner is anything that can produce a raw Lighthouse result.
type Runner interface {
	Run(ctx context.Context, target string) (*Result, error)
}

// Service returns summaries, remembering them in Redis for an hour.
// A nil Redis client disables caching.
type Service struct {
	runner Runner
	rdb    *redis.Client
	logger *zap.Logger
}

func NewService(runner Runner, rdb *redis.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{runner: runner, rdb: rdb, logger: logger}
}

// Insights returns the summary for target.
func (s *Service) Insights(ctx context.Context, target string) (models.PageSpeedSummary, error) {
	target, err := NormalizeURL(target)
	if err != nil {
		return models.PageSpeedSummary{}, err
	}
	key := cachePrefix + target

	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
			var sum models.PageSpeedSummary
			if json.Unmarshal(raw, &sum) == nil {
				return sum, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("pagespeed cache read failed", zap.String("url", target), zap.Error(err))
		}
	}

	res, err := s.runner.Run(ctx, target)
	if err != nil {
		return models.PageSpeedSummary{}, err
	}
	sum := Summarize(res)

	if s.rdb != nil {
		if raw, err := json.Marshal(sum); err == nil {
			if err := s.rdb.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
				s.logger.Warn("pagespeed cache write failed", zap.String("url", target), zap.Error(err))
			}
		}
	}
	return sum, nil
}
