package http

import (
	"encoding/json"
	"fmt"
	stdhttp "net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Proxy forwards /api/<service>/** requests to the backend service that
// owns the path. It keeps no state and no concurrency coordination; each
// request is rewritten, forwarded, and its response streamed back.
type Proxy struct {
	log      *zerolog.Logger
	services map[string]*httputil.ReverseProxy
}

// NewProxy builds one reverse proxy per configured upstream.
// upstreams maps a service name (the first path segment under /api)
// to its base URL.
func NewProxy(upstreams map[string]string, logger *zerolog.Logger) (*Proxy, error) {
	services := make(map[string]*httputil.ReverseProxy, len(upstreams))
	for name, raw := range upstreams {
		target, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse upstream %q: %w", name, err)
		}
		services[name] = newServiceProxy(name, target, logger)
	}
	return &Proxy{log: logger, services: services}, nil
}

func newServiceProxy(name string, target *url.URL, logger *zerolog.Logger) *httputil.ReverseProxy {
	return &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(target)
			// Strip the gateway's /api prefix; the service segment
			// itself stays on the forwarded path.
			r.Out.URL.Path = strings.TrimPrefix(r.In.URL.Path, "/api")
			r.Out.URL.RawPath = ""
			r.Out.Host = target.Host
			r.SetXForwarded()
			logger.Debug().
				Str("service", name).
				Str("method", r.In.Method).
				Str("path", r.In.URL.Path).
				Str("target", r.Out.URL.String()).
				Msg("proxying request")
		},
		ErrorHandler: func(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
			logger.Error().Err(err).Str("service", name).Str("path", r.URL.Path).Msg("upstream error")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(stdhttp.StatusBadGateway)
			_ = json.NewEncoder(w).Encode(gin.H{
				"error":   "gateway error",
				"message": "upstream service unavailable",
			})
		},
	}
}

// Mount registers the proxy routes on the gin engine.
func (p *Proxy) Mount(r *gin.Engine) {
	for name, rp := range p.services {
		handler := gin.WrapH(rp)
		r.Any("/api/"+name, handler)
		r.Any("/api/"+name+"/*path", handler)
	}
}
