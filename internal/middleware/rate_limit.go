// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/aurum-jewels/admin-console/internal/config"
	"github.com/aurum-jewels/admin-console/internal/i18n"
	"github.com/aurum-jewels/admin-console/internal/utils"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiter struct {
	visitors map[string]*visitor
	mtx      sync.Mutex
	rate     rate.Limit
	burst    int
}

func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     r,
		burst:    b,
	}

	// Clean up old visitors every minute
	go rl.cleanupVisitors()

	return rl
}

func (rl *RateLimiter) cleanupVisitors() {
	for {
		time.Sleep(time.Minute)
		rl.mtx.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(rl.visitors, ip)
			}
		}
		rl.mtx.Unlock()
	}
}

func (rl *RateLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.rate, rl.burst)
		rl.visitors[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		limiter := rl.getVisitor(ip)

		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": i18n.T(utils.GetLangFromContext(c), i18n.KeyRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RateLimits are the per-route-group limiters for one engine.
type RateLimits struct {
	General gin.HandlerFunc
	Auth    gin.HandlerFunc
	Upload  gin.HandlerFunc
}

func NewRateLimits(cfg config.RateLimitConfig) RateLimits {
	if !cfg.Enabled {
		pass := func(c *gin.Context) { c.Next() }
		return RateLimits{General: pass, Auth: pass, Upload: pass}
	}

	return RateLimits{
		General: NewRateLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst).Middleware(),
		Auth:    NewRateLimiter(rate.Every(time.Minute/time.Duration(cfg.LoginsPerMinute)), cfg.LoginsPerMinute).Middleware(),
		Upload:  NewRateLimiter(rate.Every(time.Minute/time.Duration(cfg.UploadsPerMinute)), cfg.UploadsPerMinute).Middleware(),
	}
}
