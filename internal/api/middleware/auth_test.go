package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func request(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

func TestClassify(t *testing.T) {
	a := NewAuth("full-tok", "larva-tok", "ro-tok")

	cases := []struct {
		token string
		want  Tier
	}{
		{"full-tok", TierFull},
		{"larva-tok", TierLarva},
		{"ro-tok", TierReadonly},
		{"nonsense", TierNone},
		{"", TierNone},
	}
	for _, c := range cases {
		if got := a.Classify(request(c.token)); got != c.want {
			t.Errorf("token %q: expected %v, got %v", c.token, c.want, got)
		}
	}

	// A prefix or superstring of a real token must not match.
	if got := a.Classify(request("full-tok2")); got != TierNone {
		t.Errorf("superstring token should be TierNone, got %v", got)
	}
}

func TestClassifyDisabledTiers(t *testing.T) {
	// Unconfigured larva/readonly tokens must never match, in particular
	// not an empty bearer value.
	a := NewAuth("full-tok", "", "")

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer ")
	if got := a.Classify(r); got != TierNone {
		t.Fatalf("empty bearer should be TierNone, got %v", got)
	}
}

func TestTierAllows(t *testing.T) {
	caps := []Capability{CapRead, CapMarkSeen, CapSuggest, CapLogAppend, CapHeartbeat, CapLarva, CapWrite}

	want := map[Tier][]bool{
		TierFull:     {true, true, true, true, true, true, true},
		TierLarva:    {true, true, true, true, true, true, false},
		TierReadonly: {true, true, true, false, false, false, false},
		TierNone:     {false, false, false, false, false, false, false},
	}
	for tier, expect := range want {
		for i, cap := range caps {
			if got := tier.Allows(cap); got != expect[i] {
				t.Errorf("%v.Allows(%d): expected %v, got %v", tier, cap, expect[i], got)
			}
		}
	}
}

func TestRequireRejections(t *testing.T) {
	a := NewAuth("full-tok", "larva-tok", "ro-tok")
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// No token at all: 401 before the handler runs.
	w := httptest.NewRecorder()
	a.Require(CapRead)(ok).ServeHTTP(w, request(""))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	// Readonly tier on a write route: 403.
	w = httptest.NewRecorder()
	a.Require(CapWrite)(ok).ServeHTTP(w, request("ro-tok"))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}

	// Larva tier on a larva route: allowed through.
	w = httptest.NewRecorder()
	a.Require(CapLarva)(ok).ServeHTTP(w, request("larva-tok"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequireStoresTier(t *testing.T) {
	a := NewAuth("full-tok", "larva-tok", "ro-tok")

	var seen Tier
	capture := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TierFromContext(r.Context())
	})

	w := httptest.NewRecorder()
	a.Require(CapRead)(capture).ServeHTTP(w, request("larva-tok"))
	if seen != TierLarva {
		t.Fatalf("expected TierLarva in context, got %v", seen)
	}
}
