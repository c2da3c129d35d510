package server

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// requireAuth rejects requests whose Authorization header does not carry
// the exact shared service token. Auth runs before any route logic, so a
// bad token gets 401 even for unknown business ids. Repeated failures from
// one IP get throttled with 429.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.Auth.ServiceToken == "" {
			s.log.Error().Msg("rejecting request: service token not configured")
			writeError(w, http.StatusServiceUnavailable, "service token not configured")
			return
		}

		if !s.limiter.allow(r.RemoteAddr) {
			s.log.Warn().
				Str("remote", r.RemoteAddr).
				Msg("auth rate limit exceeded")
			writeError(w, http.StatusTooManyRequests, "too many failed authentication attempts")
			return
		}

		token, ok := bearerToken(r)
		if !ok {
			s.limiter.recordFailure(r.RemoteAddr)
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if !safeEqual(token, s.cfg.Auth.ServiceToken) {
			s.limiter.recordFailure(r.RemoteAddr)
			s.log.Warn().
				Str("remote", r.RemoteAddr).
				Str("path", r.URL.Path).
				Msg("invalid service token")
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next(w, r)
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// safeEqual performs a constant-time string comparison to prevent timing
// attacks. Length is compared in constant time as well so the secret's
// length does not leak.
func safeEqual(a, b string) bool {
	lenMatch := subtle.ConstantTimeEq(int32(len(a)), int32(len(b)))
	cmp := subtle.ConstantTimeCompare([]byte(a), []byte(b))
	return subtle.ConstantTimeSelect(lenMatch, cmp, 0) == 1
}
