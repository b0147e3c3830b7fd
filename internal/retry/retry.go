package retry

import (
	"context"
	"math/rand"
	"time"

	apperrors "github.com/yoobe-br/cubbo-order-support/internal/errors"
)

// WithRetry executa fn até attempts vezes com backoff exponencial e jitter.
// Erros marcados como não reintentáveis interrompem as tentativas.
func WithRetry(
	ctx context.Context,
	attempts int,
	baseDelay time.Duration,
	fn func() error,
) error {
	var err error

	for i := 1; i <= attempts; i++ {
		// Verificar se o context expirou
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err = fn()
		if err == nil {
			return nil
		}

		// Erros permanentes (4xx, validação) não melhoram repetindo
		if _, ok := err.(*apperrors.AppError); ok && !apperrors.IsRetryable(err) {
			return err
		}

		// Não dormir na última tentativa
		if i == attempts {
			break
		}

		// Backoff exponencial com jitter
		sleep := baseDelay * time.Duration(1<<uint(i-1))
		jitter := time.Duration(rand.Int63n(int64(baseDelay)))
		totalSleep := sleep + jitter

		select {
		case <-time.After(totalSleep):
			// Continuar para a próxima tentativa
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return err
}
