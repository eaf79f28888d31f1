package middleware

import (
	"sync"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	tele "gopkg.in/telebot.v3"
)

// RateLimit creates middleware that drops updates from users exceeding
// rps requests per second (with the given burst)
func RateLimit(rps float64, burst int, logger *zap.Logger) tele.MiddlewareFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[int64]*rate.Limiter)
	)

	getLimiter := func(userID int64) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		lim, ok := limiters[userID]
		if !ok {
			lim = rate.NewLimiter(rate.Limit(rps), burst)
			limiters[userID] = lim
		}
		return lim
	}

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return next(c)
			}

			if !getLimiter(sender.ID).Allow() {
				logger.Warn("Rate limit exceeded, dropping update",
					zap.Int64("user_id", sender.ID),
				)
				return nil
			}

			return next(c)
		}
	}
}
