// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/taibuivan/ludex/internal/platform/constants"
)

// # Cross-Origin Resource Sharing

// CORSPolicy decides which browser origins may call the API.
type CORSPolicy struct {
	// AllowAll accepts any origin. Used in development.
	AllowAll bool

	// Origins lists exact origins, or domain suffixes when they start
	// with a dot.
	Origins []string
}

// Allows reports whether origin passes the policy.
func (policy CORSPolicy) Allows(origin string) bool {
	if policy.AllowAll {
		return true
	}

	host := origin
	if _, rest, ok := strings.Cut(origin, "://"); ok {
		host = rest
	}

	return slices.ContainsFunc(policy.Origins, func(allowed string) bool {
		if suffix, ok := strings.CutPrefix(allowed, "."); ok {
			return host == suffix || strings.HasSuffix(host, "."+suffix)
		}
		return origin == allowed
	})
}

// CORS sets the CORS headers for allowed origins and answers preflight
// requests directly.
func CORS(policy CORSPolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			origin := request.Header.Get(constants.HeaderOrigin)
			if origin == "" {
				next.ServeHTTP(writer, request)
				return
			}

			if policy.Allows(origin) {
				header := writer.Header()
				header.Set("Access-Control-Allow-Origin", origin)
				header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				header.Set("Access-Control-Allow-Headers", "Accept, Content-Type, X-Request-ID")
				header.Set("Access-Control-Expose-Headers", "X-Request-ID, Retry-After")
				header.Set("Access-Control-Max-Age", "300")
				header.Add("Vary", constants.HeaderOrigin)
			}

			if request.Method == http.MethodOptions {
				writer.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
