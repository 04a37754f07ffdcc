package infra

import (
	"context"
	"net/http"
)

type CachedResponse struct {
	Status int
	Header http.Header
	Body   []byte
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.2 --name=ResponseCache --output=../../../mocks
type ResponseCache interface {
	Get(ctx context.Context, key string) (*CachedResponse, bool, error)
	Save(ctx context.Context, key string, resp *CachedResponse) error
	Len() int
}
