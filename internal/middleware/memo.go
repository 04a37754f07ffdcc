package middleware

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/zeebo/blake3"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/hodzhakhov/archiver/internal/encoder"
	"github.com/hodzhakhov/archiver/internal/interfaces/infra"
)

const HeaderMemo = "X-Memo"

// bufferedWriter собирает ответ обработчика в память.
type bufferedWriter struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newBufferedWriter() *bufferedWriter {
	return &bufferedWriter{header: make(http.Header)}
}

func (b *bufferedWriter) Header() http.Header {
	return b.header
}

func (b *bufferedWriter) WriteHeader(code int) {
	if b.status == 0 {
		b.status = code
	}
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

func (b *bufferedWriter) response() *infra.CachedResponse {
	status := b.status
	if status == 0 {
		status = http.StatusOK
	}
	return &infra.CachedResponse{
		Status: status,
		Header: b.header,
		Body:   b.body.Bytes(),
	}
}

// MemoKey — BLAKE3 от метода, пути и тела запроса.
func MemoKey(method, path string, body []byte) string {
	h := blake3.New()
	h.Write([]byte(method))
	h.Write([]byte{0})
	h.Write([]byte(path))
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// Memoize отдаёт сохранённый ответ на точный повтор запроса. Запросы вне
// scope проходят мимо кэша. Одновременные одинаковые запросы
// обрабатываются один раз, сохраняются только ответы 200.
func Memoize(cache infra.ResponseCache, log *zap.Logger, scope func(*http.Request) bool) func(http.Handler) http.Handler {
	var group singleflight.Group

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !scope(r) {
				next.ServeHTTP(w, r)
				return
			}

			var body []byte
			if r.Body != nil {
				var err error
				body, err = io.ReadAll(r.Body)
				r.Body.Close()
				if err != nil {
					writeBodyError(w, log, err)
					return
				}
			}

			key := MemoKey(r.Method, r.URL.Path, body)

			cached, ok, err := cache.Get(r.Context(), key)
			if err != nil {
				log.Warn("ошибка чтения из кэша ответов", zap.String("key", key), zap.Error(err))
			}
			if ok {
				log.Debug("ответ отдан из кэша", zap.String("key", key), zap.String("url", r.URL.Path))
				writeCached(w, cached, "hit")
				return
			}

			v, _, shared := group.Do(key, func() (any, error) {
				// Результат получат все ожидающие клиенты, поэтому отключение
				// первого из них не должно прерывать обработку.
				ctx := context.WithoutCancel(r.Context())

				if cached, ok, err := cache.Get(ctx, key); err == nil && ok {
					return cached, nil
				}

				bw := newBufferedWriter()
				req := r.Clone(ctx)
				req.Body = io.NopCloser(bytes.NewReader(body))
				req.ContentLength = int64(len(body))

				next.ServeHTTP(bw, req)

				resp := bw.response()
				if resp.Status == http.StatusOK {
					if err := cache.Save(ctx, key, resp); err != nil {
						log.Warn("не удалось сохранить ответ в кэш", zap.String("key", key), zap.Error(err))
					}
				}
				return resp, nil
			})

			state := "miss"
			if shared {
				state = "shared"
			}
			writeCached(w, v.(*infra.CachedResponse), state)
		})
	}
}

func writeCached(w http.ResponseWriter, resp *infra.CachedResponse, state string) {
	h := w.Header()
	for k, vals := range resp.Header {
		h[k] = append([]string(nil), vals...)
	}
	h.Set("Content-Length", strconv.Itoa(len(resp.Body)))
	h.Set(HeaderMemo, state)

	w.WriteHeader(resp.Status)
	w.Write(resp.Body)
}

func writeBodyError(w http.ResponseWriter, log *zap.Logger, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		encoder.WriteError(w, http.StatusRequestEntityTooLarge, "Размер тела запроса превышает допустимый лимит")
		return
	}

	log.Warn("не удалось прочитать тело запроса", zap.Error(err))
	encoder.WriteError(w, http.StatusBadRequest, "Не удалось прочитать тело запроса")
}
