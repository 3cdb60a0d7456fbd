// Package sanitize redacts sensitive values before they reach a log line.
package sanitize

import (
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

var numericID = regexp.MustCompile(`^\d+$`)

// Email keeps the first two characters of the local part and the full domain.
func Email(email string) string {
	if email == "" {
		return "[REDACTED]"
	}
	at := strings.Index(email, "@")
	if at < 0 {
		return email
	}
	local, domain := email[:at], email[at+1:]
	if len(local) <= 2 {
		return email
	}
	hidden := len(local) - 2
	if hidden > 8 {
		hidden = 8
	}
	return local[:2] + strings.Repeat("*", hidden) + "@" + domain
}

// ID keeps two characters on each end.
func ID(id string) string {
	if id == "" {
		return "[REDACTED]"
	}
	if len(id) <= 4 {
		return id
	}
	return id[:2] + "***" + id[len(id)-2:]
}

// Token keeps four characters on each end. Bearer tokens, JWTs, reset tokens.
func Token(tok string) string {
	if tok == "" {
		return "[REDACTED]"
	}
	if len(tok) <= 8 {
		return "***"
	}
	return tok[:4] + "***" + tok[len(tok)-4:]
}

// URL redacts email-like and long numeric path segments. Query strings are
// dropped entirely; token_ws and friends never belong in a log.
func URL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return strings.ReplaceAll(raw, "/users/profile/", "/users/profile/[REDACTED] ")
	}
	parts := strings.Split(u.Path, "/")
	for i, p := range parts {
		switch {
		case strings.Contains(p, "@"):
			parts[i] = Email(p)
		case numericID.MatchString(p) && len(p) > 4:
			parts[i] = ID(p)
		}
	}
	out := u.Scheme + "://" + u.Host + strings.Join(parts, "/")
	if u.Scheme == "" {
		out = strings.Join(parts, "/")
	}
	return out
}

// Headers returns a copy with authorization-like values redacted.
func Headers(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, vals := range h {
		lower := strings.ToLower(k)
		if strings.Contains(lower, "authorization") || strings.Contains(lower, "token") {
			redacted := make([]string, len(vals))
			for i, v := range vals {
				v = strings.TrimPrefix(v, "Bearer ")
				redacted[i] = Token(v)
			}
			out[k] = redacted
			continue
		}
		out[k] = append([]string(nil), vals...)
	}
	return out
}
