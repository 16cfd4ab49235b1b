package fetch

import (
	"fmt"
	"net/http"
	"strings"
)

// Mode controls how the executor treats cross-origin requests.
type Mode string

const (
	ModeCORS       Mode = "cors"
	ModeNoCORS     Mode = "no-cors"
	ModeSameOrigin Mode = "same-origin"
)

// CacheMode is the cache directive attached to a request.
// There is no local cache; directives only shape the outgoing headers.
type CacheMode string

const (
	CacheDefault      CacheMode = "default"
	CacheNoStore      CacheMode = "no-store"
	CacheReload       CacheMode = "reload"
	CacheNoCache      CacheMode = "no-cache"
	CacheForceCache   CacheMode = "force-cache"
	CacheOnlyIfCached CacheMode = "only-if-cached"
)

// Header is a single request header. Options keep headers as a slice so the
// caller's order is preserved when they are added to the request.
type Header struct {
	Name  string
	Value string
}

// Options configure a single call. They are owned by the caller and are not
// retained by the Executor.
type Options struct {
	// Method is the HTTP method. Empty means GET.
	Method string

	// Headers are added to the request in order.
	Headers []Header

	// Mode is the cross-origin mode. Empty means cors.
	Mode Mode

	// Cache is the cache directive. Empty means default.
	Cache CacheMode

	// Body is sent as the request body. GET and HEAD requests must not have one.
	Body []byte
}

// ParseMode parses a mode name. The empty string yields ModeCORS.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeCORS, nil
	case ModeCORS, ModeNoCORS, ModeSameOrigin:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}

// ParseCacheMode parses a cache directive. The empty string yields CacheDefault.
func ParseCacheMode(s string) (CacheMode, error) {
	switch c := CacheMode(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return CacheDefault, nil
	case CacheDefault, CacheNoStore, CacheReload, CacheNoCache, CacheForceCache, CacheOnlyIfCached:
		return c, nil
	default:
		return "", fmt.Errorf("unknown cache mode %q", s)
	}
}

// normalized returns a copy of o with defaults filled in, or an *Error if the
// combination cannot be sent.
func (o Options) normalized() (Options, error) {
	n := o

	n.Method = strings.ToUpper(strings.TrimSpace(o.Method))
	if n.Method == "" {
		n.Method = http.MethodGet
	}

	mode, err := ParseMode(string(o.Mode))
	if err != nil {
		return n, newError(KindInvalidRequest, err)
	}
	n.Mode = mode

	cache, err := ParseCacheMode(string(o.Cache))
	if err != nil {
		return n, newError(KindInvalidRequest, err)
	}
	n.Cache = cache

	if len(n.Body) > 0 && (n.Method == http.MethodGet || n.Method == http.MethodHead) {
		return n, newErrorf(KindInvalidRequest, "%s request cannot have a body", n.Method)
	}

	if n.Mode == ModeNoCORS {
		switch n.Method {
		case http.MethodGet, http.MethodHead, http.MethodPost:
		default:
			return n, newErrorf(KindPolicy, "method %s is not allowed in %s mode", n.Method, n.Mode)
		}
	}

	if n.Cache == CacheOnlyIfCached && n.Mode != ModeSameOrigin {
		return n, newErrorf(KindPolicy, "%s cache mode requires %s mode", n.Cache, ModeSameOrigin)
	}

	return n, nil
}

// applyHeaders adds the caller's headers followed by any headers implied by
// the cache directive. Directive headers never replace caller headers.
func (o Options) applyHeaders(h http.Header) {
	for _, hdr := range o.Headers {
		h.Add(hdr.Name, hdr.Value)
	}

	switch o.Cache {
	case CacheNoStore, CacheReload:
		if h.Get("Pragma") == "" {
			h.Set("Pragma", "no-cache")
		}
		if h.Get("Cache-Control") == "" {
			h.Set("Cache-Control", "no-cache")
		}
	case CacheNoCache:
		if h.Get("Cache-Control") == "" {
			h.Set("Cache-Control", "max-age=0")
		}
	}
}
