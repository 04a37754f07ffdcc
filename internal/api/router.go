package api

import (
	"net/http"

	"github.com/hodzhakhov/archiver/internal/decoder"
)

type route struct {
	method string
	path   string
}

// Router сопоставляет запрос по точной паре (метод, путь), всё остальное
// получает 404 со списком эндпоинтов.
type Router struct {
	routes   map[route]http.HandlerFunc
	notFound http.HandlerFunc
}

func NewRouter(h *ArchiveAPI) *Router {
	return &Router{
		routes: map[route]http.HandlerFunc{
			{http.MethodPost, "/archive"}:          h.Archive,
			{http.MethodPost, "/archive/compress"}: h.Compress,
			{http.MethodPost, "/archive/extract"}:  h.Extract,
			{http.MethodGet, "/formats"}:           h.Formats,
		},
		notFound: h.NotFound,
	}
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if handler, ok := rt.routes[route{r.Method, r.URL.Path}]; ok {
		handler(w, r)
		return
	}
	rt.notFound(w, r)
}

// ContentTypeRules — допустимые Content-Type для POST-эндпоинтов со
// структурированным телом.
func ContentTypeRules() map[string][]string {
	return map[string][]string{
		"/archive":          {"application/json", "application/cbor"},
		"/archive/compress": {"multipart/form-data"},
	}
}

// MemoScope отбирает запросы без побочных эффектов, ответы на которые можно
// кэшировать. POST /archive может писать файлы на диск и в кэш не попадает.
func MemoScope(r *http.Request) bool {
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/formats":
		return true
	case r.Method == http.MethodPost && r.URL.Path == "/archive/extract":
		return true
	case r.Method == http.MethodPost && r.URL.Path == "/archive/compress":
		return decoder.DetectEncoding(r.Header.Get("Content-Type")) == decoder.EncodingMultipart
	default:
		return false
	}
}
