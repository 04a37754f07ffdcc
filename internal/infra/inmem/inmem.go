package inmem

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/pierrec/lz4/v4"
	"go.uber.org/zap"

	"github.com/hodzhakhov/archiver/internal/interfaces/infra"
)

var _ infra.ResponseCache = (*responseCache)(nil)

type entry struct {
	status     int
	header     http.Header
	body       []byte
	rawSize    int
	compressed bool
}

// responseCache хранит ответы до конца жизни процесса, без вытеснения.
type responseCache struct {
	logger *zap.Logger
	db     map[string]*entry
	mu     sync.RWMutex
}

func New(log *zap.Logger) infra.ResponseCache {
	return &responseCache{
		logger: log,
		db:     make(map[string]*entry),
	}
}

func (c *responseCache) Save(ctx context.Context, key string, resp *infra.CachedResponse) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrContextDone, ctx.Err())
	default:
	}

	if resp == nil {
		return ErrResponseNil
	}

	if key == "" {
		return ErrKeyEmpty
	}

	e := &entry{
		status:  resp.Status,
		header:  resp.Header.Clone(),
		rawSize: len(resp.Body),
	}

	if packed, err := compressLZ4(resp.Body); err == nil {
		e.body = packed
		e.compressed = true
	} else {
		e.body = append([]byte(nil), resp.Body...)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.db[key] = e
	c.logger.Debug("ответ сохранен в кэш",
		zap.String("key", key),
		zap.String("size", humanize.Bytes(uint64(e.rawSize))),
		zap.String("stored", humanize.Bytes(uint64(len(e.body)))),
	)

	return nil
}

func (c *responseCache) Get(ctx context.Context, key string) (*infra.CachedResponse, bool, error) {
	select {
	case <-ctx.Done():
		return nil, false, fmt.Errorf("%w: %v", ErrContextDone, ctx.Err())
	default:
	}

	if key == "" {
		return nil, false, ErrKeyEmpty
	}

	c.mu.RLock()
	e, exists := c.db[key]
	c.mu.RUnlock()

	if !exists {
		return nil, false, nil
	}

	body := e.body
	if e.compressed {
		var err error
		body, err = decompressLZ4(e.body, e.rawSize)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrCorruptedBody, err)
		}
	} else {
		body = append([]byte(nil), body...)
	}

	return &infra.CachedResponse{
		Status: e.status,
		Header: e.header.Clone(),
		Body:   body,
	}, true, nil
}

func (c *responseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.db)
}

func compressLZ4(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, errIncompressible
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, dst, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 || n >= len(data) {
		return nil, errIncompressible
	}

	return dst[:n], nil
}

func decompressLZ4(data []byte, size int) ([]byte, error) {
	dst := make([]byte, size)
	n, err := lz4.UncompressBlock(data, dst)
	if err != nil {
		return nil, err
	}
	if n != size {
		return nil, fmt.Errorf("получено %d байт, ожидалось %d", n, size)
	}

	return dst, nil
}
