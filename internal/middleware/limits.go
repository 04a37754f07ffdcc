package middleware

import (
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/hodzhakhov/archiver/internal/encoder"
)

// BodyLimit ограничивает размер тела запроса n байтами.
func BodyLimit(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if n > 0 && r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WorkerPool ограничивает число одновременно обрабатываемых запросов.
// Остальные ждут свободного слота, пока клиент не отключится.
func WorkerPool(n int, log *zap.Logger) func(http.Handler) http.Handler {
	if n < 1 {
		n = 1
	}
	sem := semaphore.NewWeighted(int64(n))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := sem.Acquire(r.Context(), 1); err != nil {
				log.Warn("запрос отменён в очереди обработки",
					zap.String("url", r.URL.Path),
					zap.Error(err),
				)
				encoder.WriteError(w, http.StatusServiceUnavailable, "Сервер перегружен, повторите запрос позже")
				return
			}
			defer sem.Release(1)

			next.ServeHTTP(w, r)
		})
	}
}
