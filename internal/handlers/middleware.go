package handlers

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/commquest/commquest-backend/internal/models"
	"github.com/commquest/commquest-backend/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	ctxUserIDKey = "user_id"
	ctxRoleKey   = "user_role"
)

// RequireAuth validates the bearer token and stores the caller's identity on
// the gin context.
func RequireAuth(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
			return
		}

		claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxRoleKey, claims.Role)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ctxRoleKey)
		if !exists || role.(models.UserRole) != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
			return
		}
		c.Next()
	}
}

// AuthUserID returns the authenticated caller's id, or "" when the request
// is unauthenticated.
func AuthUserID(c *gin.Context) string {
	if userID, exists := c.Get(ctxUserIDKey); exists {
		return userID.(string)
	}
	return ""
}

// AuthRole returns the authenticated caller's role.
func AuthRole(c *gin.Context) models.UserRole {
	if role, exists := c.Get(ctxRoleKey); exists {
		return role.(models.UserRole)
	}
	return ""
}

// IsAdmin reports whether the caller holds the admin role.
func IsAdmin(c *gin.Context) bool {
	return AuthRole(c) == models.RoleAdmin
}

// ===== RATE LIMITING =====

// ipRateLimiter keeps one token bucket per client IP. Stale entries are
// pruned so long-running processes do not accumulate buckets forever.
type ipRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiterEntry
	limit    rate.Limit
	burst    int
	stop     chan struct{}
}

type ipLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPRateLimiter(limit rate.Limit, burst int) *ipRateLimiter {
	rl := &ipRateLimiter{
		limiters: make(map[string]*ipLimiterEntry),
		limit:    limit,
		burst:    burst,
		stop:     make(chan struct{}),
	}
	go rl.prune()
	return rl
}

func (rl *ipRateLimiter) get(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, exists := rl.limiters[ip]
	if !exists {
		entry = &ipLimiterEntry{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

func (rl *ipRateLimiter) prune() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for ip, entry := range rl.limiters {
				if time.Since(entry.lastSeen) > 10*time.Minute {
					delete(rl.limiters, ip)
				}
			}
			rl.mu.Unlock()
		case <-rl.stop:
			return
		}
	}
}

// Close stops the prune goroutine. Middleware limiters live for the process
// lifetime; Close exists for tests and embedding.
func (rl *ipRateLimiter) Close() {
	close(rl.stop)
}

// RateLimitMiddleware enforces a per-IP request rate.
func RateLimitMiddleware(limit rate.Limit, burst int) gin.HandlerFunc {
	rl := newIPRateLimiter(limit, burst)
	return func(c *gin.Context) {
		if !rl.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{Error: "Too many requests"})
			return
		}
		c.Next()
	}
}

// GeneralRateLimit covers the whole API surface.
func GeneralRateLimit() gin.HandlerFunc {
	return RateLimitMiddleware(rate.Limit(20), 40)
}

// AuthRateLimit throttles credential endpoints harder.
func AuthRateLimit() gin.HandlerFunc {
	return RateLimitMiddleware(rate.Limit(1), 5)
}

// AIRateLimit keeps generation traffic within provider quotas.
func AIRateLimit() gin.HandlerFunc {
	return RateLimitMiddleware(rate.Limit(0.2), 2)
}

// CORSMiddleware allows the configured frontend origin.
func CORSMiddleware(frontendOrigin string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{frontendOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
