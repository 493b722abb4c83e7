package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// incrementWithTTLScript incrementa el contador de la clave y fija su
// expiración la primera vez, de forma atómica.
const incrementWithTTLScript = `
local hits = redis.call("INCR", KEYS[1])
if hits == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return hits
`

const otpLimiterKeyPrefix = "pagecraft:otp:requests:"

// scriptRunner abstrae la ejecución de scripts Lua para poder probar el
// limiter sin un servidor Redis.
type scriptRunner interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// redisOTPLimiter cuenta solicitudes por correo dentro de una ventana fija,
// compartida entre instancias del servicio.
type redisOTPLimiter struct {
	runner scriptRunner
	window time.Duration
	max    int
}

// NewRedisOTPRateLimiter crea un rate limiter de OTP respaldado por Redis.
func NewRedisOTPRateLimiter(client *redis.Client, window time.Duration, max int) OTPRateLimiter {
	if client == nil {
		return nil
	}
	return newRedisOTPLimiter(client, window, max)
}

func newRedisOTPLimiter(runner scriptRunner, window time.Duration, max int) *redisOTPLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &redisOTPLimiter{runner: runner, window: window, max: max}
}

// Allow registra un intento para la clave y reporta si sigue dentro del cupo.
// Ante errores de Redis deja pasar: un Redis caído no debe bloquear el reset
// de contraseñas.
func (l *redisOTPLimiter) Allow(key string) bool {
	if l == nil || l.runner == nil {
		return true
	}
	normalized := strings.ToLower(strings.TrimSpace(key))
	if normalized == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	hits, err := l.runner.Eval(ctx, incrementWithTTLScript,
		[]string{otpLimiterKeyPrefix + normalized},
		l.window.Milliseconds(),
	).Int()
	if err != nil {
		return true
	}
	return hits <= l.max
}
