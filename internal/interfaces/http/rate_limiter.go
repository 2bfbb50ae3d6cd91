package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/casabella/casa-bella-api/internal/application/dto"
)

// ipEntry cuenta intentos por IP dentro de una ventana deslizante.
type ipEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

var (
	loginAttempts   = make(map[string]*ipEntry)
	loginAttemptsMu sync.Mutex
)

// LoginRateLimiter limita los intentos de login por IP (ventana de 1 minuto).
// El estado vive en memoria: suficiente para una instancia única del API.
func LoginRateLimiter(limit int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.IP()

		loginAttemptsMu.Lock()
		entry, exists := loginAttempts[ip]
		if !exists {
			entry = &ipEntry{}
			loginAttempts[ip] = entry
		}
		loginAttemptsMu.Unlock()

		entry.mu.Lock()
		defer entry.mu.Unlock()

		now := time.Now()
		if now.After(entry.windowEnd) {
			entry.count = 0
			entry.windowEnd = now.Add(time.Minute)
		}

		entry.count++
		if entry.count > limit {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "demasiados intentos de login, espere un minuto",
			})
		}
		return c.Next()
	}
}

// purga periódica de IPs expiradas para no acumular entradas.
const purgeInterval = 5 * time.Minute

func init() {
	go purgeExpiredEntries()
}

func purgeExpiredEntries() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		loginAttemptsMu.Lock()
		for ip, entry := range loginAttempts {
			entry.mu.Lock()
			if now.After(entry.windowEnd) {
				delete(loginAttempts, ip)
			}
			entry.mu.Unlock()
		}
		loginAttemptsMu.Unlock()
	}
}
