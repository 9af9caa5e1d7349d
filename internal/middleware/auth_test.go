package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAuthRoundTrip(t *testing.T) {
	const secret = "secret-1"
	tok, err := SignToken(secret, "acct-1", time.Hour)
	if err != nil {
		t.Fatalf("SignToken returned error: %v", err)
	}

	var got string
	h := Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = AccountFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if got != "acct-1" {
		t.Fatalf("account: got %q want %q", got, "acct-1")
	}
}

func TestAuthRejections(t *testing.T) {
	const secret = "secret-1"
	h := Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	serve := func(header string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := serve(""); code != http.StatusUnauthorized {
		t.Fatalf("missing header: got %d", code)
	}
	if code := serve("Basic abc"); code != http.StatusUnauthorized {
		t.Fatalf("wrong scheme: got %d", code)
	}
	if code := serve("Bearer garbage"); code != http.StatusUnauthorized {
		t.Fatalf("malformed token: got %d", code)
	}

	wrong, err := SignToken("other-secret", "acct-1", time.Hour)
	if err != nil {
		t.Fatalf("SignToken returned error: %v", err)
	}
	if code := serve("Bearer " + wrong); code != http.StatusUnauthorized {
		t.Fatalf("wrong secret: got %d", code)
	}

	expired, err := SignToken(secret, "acct-1", -time.Hour)
	if err != nil {
		t.Fatalf("SignToken returned error: %v", err)
	}
	if code := serve("Bearer " + expired); code != http.StatusUnauthorized {
		t.Fatalf("expired token: got %d", code)
	}
}

func TestAccountFromContextEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := AccountFromContext(req.Context()); got != "" {
		t.Fatalf("got %q want empty", got)
	}
}
