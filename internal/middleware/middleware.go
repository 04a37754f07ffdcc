package middleware

import (
	"mime"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hodzhakhov/archiver/internal/encoder"
)

const HeaderRequestID = "X-Request-ID"

// statusWriter запоминает код ответа и число записанных байт.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func ReqLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(HeaderRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(HeaderRequestID, requestID)

			log.Info("Входящий HTTP запрос",
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("url", r.URL.Path),
				zap.Int64("content_length", r.ContentLength),
			)

			sw := &statusWriter{ResponseWriter: w}
			next.ServeHTTP(sw, r)

			log.Info("HTTP запрос обработан",
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("url", r.URL.Path),
				zap.Int("status", sw.status),
				zap.Int("bytes", sw.bytes),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

// ContentTypeValidator проверяет Content-Type POST-запросов на путях из rules.
// Пути вне rules пропускаются без проверки.
func ContentTypeValidator(rules map[string][]string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, ok := rules[r.URL.Path]
			if r.Method == http.MethodPost && ok && !mediaTypeAllowed(r.Header.Get("Content-Type"), allowed) {
				encoder.WriteError(w, http.StatusBadRequest,
					"Неверный Content-Type, ожидается "+strings.Join(allowed, " или "))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func mediaTypeAllowed(contentType string, allowed []string) bool {
	base, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		base = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	}

	for _, a := range allowed {
		if base == a {
			return true
		}
	}
	return false
}

func Recovery(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error("Паника в обработчике запроса",
						zap.Any("error", err),
						zap.String("stack", string(debug.Stack())),
						zap.String("url", r.URL.Path),
						zap.String("method", r.Method),
					)

					encoder.WriteError(w, http.StatusInternalServerError, "Внутренняя ошибка сервера")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
