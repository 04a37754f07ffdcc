package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestReqLogger_SetsRequestID(t *testing.T) {
	logger := zaptest.NewLogger(t)
	handler := ReqLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/formats", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Len(t, w.Header().Get(HeaderRequestID), 36)
}

func TestReqLogger_KeepsIncomingRequestID(t *testing.T) {
	logger := zaptest.NewLogger(t)
	handler := ReqLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/formats", nil)
	req.Header.Set(HeaderRequestID, "client-id")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, "client-id", w.Header().Get(HeaderRequestID))
}

func TestRecovery(t *testing.T) {
	logger := zaptest.NewLogger(t)
	handler := Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("что-то сломалось")
	}))

	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/archive", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Внутренняя ошибка сервера"}`, w.Body.String())
}

func TestContentTypeValidator(t *testing.T) {
	rules := map[string][]string{
		"/archive":          {"application/json", "application/cbor"},
		"/archive/compress": {"multipart/form-data"},
	}
	handler := ContentTypeValidator(rules)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name        string
		method      string
		path        string
		contentType string
		want        int
	}{
		{"json", http.MethodPost, "/archive", "application/json; charset=utf-8", http.StatusOK},
		{"cbor", http.MethodPost, "/archive", "application/cbor", http.StatusOK},
		{"wrong type", http.MethodPost, "/archive", "text/plain", http.StatusBadRequest},
		{"multipart", http.MethodPost, "/archive/compress", "multipart/form-data; boundary=x", http.StatusOK},
		{"json on multipart route", http.MethodPost, "/archive/compress", "application/json", http.StatusBadRequest},
		{"unlisted path", http.MethodPost, "/archive/extract", "application/zip", http.StatusOK},
		{"get skipped", http.MethodGet, "/archive", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusBadRequest {
				assert.Contains(t, w.Body.String(), "Неверный Content-Type")
			}
		})
	}
}

func TestBodyLimit(t *testing.T) {
	var readErr error
	handler := BodyLimit(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("1234567")))

	var maxErr *http.MaxBytesError
	assert.ErrorAs(t, readErr, &maxErr)
}

func TestWorkerPool_BoundsConcurrency(t *testing.T) {
	logger := zaptest.NewLogger(t)

	var inFlight, peak int32
	handler := WorkerPool(2, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
	}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/formats", nil))
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&peak), int32(1))
}

func TestWorkerPool_CanceledWhileQueued(t *testing.T) {
	logger := zaptest.NewLogger(t)

	release := make(chan struct{})
	started := make(chan struct{})
	handler := WorkerPool(1, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
	}))

	go handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	<-started

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req.WithContext(ctx))
	close(release)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestStatusWriter_CountsBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rec}

	sw.Write([]byte("hello"))
	sw.Write(bytes.Repeat([]byte("x"), 10))

	assert.Equal(t, http.StatusOK, sw.status)
	assert.Equal(t, 15, sw.bytes)
	require.Equal(t, rec, sw.Unwrap())
}
