package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ── Fixed-window limiter per client IP ───────────────────────────────────────

type ventana struct {
	count int
	fin   time.Time
}

type limiter struct {
	mu      sync.Mutex
	nombre  string
	limit   int
	window  time.Duration
	mensaje string
	entries map[string]*ventana
	now     func() time.Time
}

func newLimiter(nombre string, limit int, window time.Duration, mensaje string) *limiter {
	l := &limiter{
		nombre:  nombre,
		limit:   limit,
		window:  window,
		mensaje: mensaje,
		entries: make(map[string]*ventana),
		now:     time.Now,
	}
	go l.purgar(5 * time.Minute)
	return l
}

// permitir counts one request for ip and reports whether it fits the window.
func (l *limiter) permitir(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, ok := l.entries[ip]
	if !ok || now.After(v.fin) {
		v = &ventana{fin: now.Add(l.window)}
		l.entries[ip] = v
	}
	v.count++
	return v.count <= l.limit, v.fin
}

func (l *limiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, fin := l.permitir(c.ClientIP())
		if !ok {
			segundos := int(fin.Sub(l.now()).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(segundos))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.mensaje))
			return
		}
		c.Next()
	}
}

// purgar drops expired windows so IPs that never come back do not pile up.
func (l *limiter) purgar(cada time.Duration) {
	ticker := time.NewTicker(cada)
	defer ticker.Stop()
	for range ticker.C {
		l.mu.Lock()
		now := l.now()
		purged := 0
		for ip, v := range l.entries {
			if now.After(v.fin) {
				delete(l.entries, ip)
				purged++
			}
		}
		remaining := len(l.entries)
		l.mu.Unlock()

		if purged > 0 {
			log.Debug().
				Str("limiter", l.nombre).
				Int("purged", purged).
				Int("remaining", remaining).
				Msg("rate limiter purged")
		}
	}
}

// LoginRateLimiter allows 20 login attempts per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return newLimiter("login", 20, time.Minute, "Demasiados intentos de login. Intente en 1 minuto.").handler()
}

// RateLimiter is the general API limiter.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newLimiter("api", limit, window, "Demasiadas solicitudes. Intente nuevamente en un momento.").handler()
}
