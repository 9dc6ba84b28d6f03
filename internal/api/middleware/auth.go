package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/clawdbotatg/nerve-cord/internal/metrics"
)

// Tier is the capability level granted to a request by its bearer token.
// Tokens establish a tier, not a bot identity: the from field on messages is
// self-asserted.
type Tier int

const (
	TierNone Tier = iota
	TierReadonly
	TierLarva
	TierFull
)

func (t Tier) String() string {
	switch t {
	case TierFull:
		return "full"
	case TierLarva:
		return "larva"
	case TierReadonly:
		return "readonly"
	default:
		return "none"
	}
}

// Capability names one gated operation family.
type Capability int

const (
	CapRead      Capability = iota // any GET
	CapMarkSeen                    // POST /messages/{id}/seen
	CapSuggest                     // suggestions CRUD
	CapLogAppend                   // POST /log
	CapHeartbeat                   // POST /heartbeat
	CapLarva                       // larva register/update
	CapWrite                       // everything else
)

// Allows reports whether the tier may exercise the capability.
func (t Tier) Allows(c Capability) bool {
	switch t {
	case TierFull:
		return true
	case TierLarva:
		return c != CapWrite
	case TierReadonly:
		return c == CapRead || c == CapMarkSeen || c == CapSuggest
	default:
		return false
	}
}

type contextKey string

const tierContextKey contextKey = "tier"

// Auth classifies bearer tokens into tiers and gates routes by capability.
type Auth struct {
	full     string
	larva    string
	readonly string
}

// NewAuth creates the authorization gate. Empty larva/readonly tokens
// disable their tiers entirely; they never match an empty header.
func NewAuth(full, larva, readonly string) *Auth {
	return &Auth{full: full, larva: larva, readonly: readonly}
}

// Classify maps the Authorization header to a tier. Precedence is full,
// then larva, then readonly; an unrecognized or missing token is TierNone.
func (a *Auth) Classify(r *http.Request) Tier {
	h := r.Header.Get("Authorization")
	switch {
	case h == "Bearer "+a.full:
		return TierFull
	case a.larva != "" && h == "Bearer "+a.larva:
		return TierLarva
	case a.readonly != "" && h == "Bearer "+a.readonly:
		return TierReadonly
	default:
		return TierNone
	}
}

// Require returns middleware that rejects requests lacking cap before any
// handler runs: 401 without a recognized token, 403 when the tier is too
// narrow. The resolved tier is stored in the request context.
func (a *Auth) Require(cap Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tier := a.Classify(r)
			if tier == TierNone {
				metrics.AuthRejections.WithLabelValues("unauthorized").Inc()
				jsonError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if !tier.Allows(cap) {
				metrics.AuthRejections.WithLabelValues("forbidden").Inc()
				jsonError(w, http.StatusForbidden, tier.String()+" token, write access denied")
				return
			}
			ctx := context.WithValue(r.Context(), tierContextKey, tier)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TierFromContext retrieves the tier resolved by Require. Returns TierNone
// on unauthenticated (public) routes.
func TierFromContext(ctx context.Context) Tier {
	tier, ok := ctx.Value(tierContextKey).(Tier)
	if !ok {
		return TierNone
	}
	return tier
}

func jsonError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
