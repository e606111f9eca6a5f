package middleware

import (
	"net/http"
	"strings"
)

// corsMaxAge is how long, in seconds, browsers may cache a preflight answer.
const corsMaxAge = "86400"

type corsPolicy struct {
	anyOrigin bool
	origins   map[string]struct{}
	methods   string
	headers   string
}

// CORS answers cross-origin requests. With "*" every origin is echoed back
// without credentials; listed origins are echoed with credentials.
// A preflight is answered here with 204 and never reaches the router; the
// headers it asks for are echoed, falling back to allowedHeaders.
func CORS(allowedOrigins, allowedMethods, allowedHeaders []string) Middleware {
	p := &corsPolicy{
		origins: make(map[string]struct{}, len(allowedOrigins)),
		methods: strings.Join(allowedMethods, ", "),
		headers: strings.Join(allowedHeaders, ", "),
	}
	for _, o := range allowedOrigins {
		if o == "*" {
			p.anyOrigin = true
			continue
		}
		p.origins[o] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p.allowOrigin(w.Header(), r.Header.Get("Origin"))

			if isPreflight(r) {
				p.answerPreflight(w.Header(), r.Header)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (p *corsPolicy) allowOrigin(h http.Header, origin string) {
	if origin == "" {
		return
	}
	h.Add("Vary", "Origin")

	switch _, listed := p.origins[origin]; {
	case p.anyOrigin:
		h.Set("Access-Control-Allow-Origin", origin)
	case listed:
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Credentials", "true")
	}
}

func (p *corsPolicy) answerPreflight(h, req http.Header) {
	h.Set("Access-Control-Allow-Methods", p.methods)
	h.Set("Access-Control-Max-Age", corsMaxAge)

	if asked := req.Get("Access-Control-Request-Headers"); asked != "" {
		h.Set("Access-Control-Allow-Headers", asked)
		h.Add("Vary", "Access-Control-Request-Headers")
		return
	}
	h.Set("Access-Control-Allow-Headers", p.headers)
}

func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
}
