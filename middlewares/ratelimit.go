package middlewares

import (
	"math"
	"strconv"
	"sync"
	"time"

	"vcard.link/configs/configslog"
	"vcard.link/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// staleLimiterTTL boşta kalan limiter'ın silinme süresi.
	staleLimiterTTL = 10 * time.Minute
	cleanupInterval = time.Minute
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// OwnerRateLimiter sahip e-postası başına token bucket uygular.
// OwnerMiddleware'den sonra kullanılmalıdır.
type OwnerRateLimiter struct {
	route string
	limit rate.Limit
	burst int
	retry int

	mu       sync.Mutex
	limiters map[string]*limiterEntry
	nowFunc  func() time.Time

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewOwnerRateLimiter dakikada perMinute istek ve burst kadar ani artışa izin verir.
// Arka planda eski girdileri temizleyen bir goroutine başlatır; Stop ile durdurulur.
func NewOwnerRateLimiter(route string, perMinute, burst int) *OwnerRateLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	if burst <= 0 {
		burst = 1
	}
	rl := &OwnerRateLimiter{
		route:    route,
		limit:    rate.Limit(float64(perMinute) / 60),
		burst:    burst,
		retry:    int(math.Ceil(60 / float64(perMinute))),
		limiters: make(map[string]*limiterEntry),
		nowFunc:  time.Now,
		stopCh:   make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Stop temizlik goroutine'ini durdurur. Birden fazla çağrılabilir.
func (rl *OwnerRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

func (rl *OwnerRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			rl.evictStale()
		}
	}
}

func (rl *OwnerRateLimiter) evictStale() {
	now := rl.nowFunc()
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, entry := range rl.limiters {
		if now.Sub(entry.lastSeen) > staleLimiterTTL {
			delete(rl.limiters, key)
		}
	}
}

// LimiterCount aktif limiter sayısı.
func (rl *OwnerRateLimiter) LimiterCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

func (rl *OwnerRateLimiter) allow(key string) bool {
	now := rl.nowFunc()
	rl.mu.Lock()
	entry, ok := rl.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[key] = entry
	}
	entry.lastSeen = now
	rl.mu.Unlock()
	return entry.limiter.AllowN(now, 1)
}

// Handler fiber middleware'i.
func (rl *OwnerRateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := OwnerEmail(c)
		if key == "" {
			key = c.IP()
		}
		if !rl.allow(key) {
			metrics.RateLimited.WithLabelValues(rl.route).Inc()
			configslog.Log.Warn("Hız sınırı aşıldı", zap.String("route", rl.route), zap.String("key", key))
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(rl.retry))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Çok fazla istek, lütfen biraz sonra tekrar deneyin"})
		}
		return c.Next()
	}
}
