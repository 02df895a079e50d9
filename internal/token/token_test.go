package token

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret-key-32-bytes-long!!!")

func testService(t *testing.T) *Service {
	t.Helper()
	return NewService(testSecret, true)
}

func TestIssueAndVerify(t *testing.T) {
	svc := testService(t)

	tok, err := svc.Issue(Subject{ID: 1, Email: "admin@example.com"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	sub, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if sub.ID != 1 {
		t.Errorf("subject ID = %d, want 1", sub.ID)
	}
	if sub.Email != "admin@example.com" {
		t.Errorf("subject email = %q, want %q", sub.Email, "admin@example.com")
	}
}

func TestVerify_TamperedSignature(t *testing.T) {
	svc := testService(t)

	tok, err := svc.Issue(Subject{ID: 1, Email: "admin@example.com"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	tampered := tok[:len(tok)-2] + "xx"
	if _, err := svc.Verify(tampered); !errors.Is(err, ErrInvalid) {
		t.Fatalf("Verify(tampered) error = %v, want ErrInvalid", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	svc := testService(t)
	other := NewService([]byte("another-secret-key-32-bytes-long"), true)

	tok, err := other.Issue(Subject{ID: 1, Email: "admin@example.com"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := svc.Verify(tok); !errors.Is(err, ErrInvalid) {
		t.Fatalf("Verify(wrong secret) error = %v, want ErrInvalid", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	svc := testService(t)

	// Sign a token that expired an hour ago using the same claims layout.
	past := time.Now().UTC().Add(-2 * time.Hour)
	c := claims{
		Subject: Subject{ID: 1, Email: "admin@example.com"},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(testSecret)
	if err != nil {
		t.Fatalf("signing expired token: %v", err)
	}

	if _, err := svc.Verify(tok); !errors.Is(err, ErrInvalid) {
		t.Fatalf("Verify(expired) error = %v, want ErrInvalid", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	svc := testService(t)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.Verify(tok); !errors.Is(err, ErrInvalid) {
			t.Errorf("Verify(%q) error = %v, want ErrInvalid", tok, err)
		}
	}
}

func TestVerify_UnexpectedSigningMethod(t *testing.T) {
	svc := testService(t)

	// Alg "none" tokens must be rejected outright.
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims{
		Subject:          Subject{ID: 1, Email: "admin@example.com"},
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing none token: %v", err)
	}

	if _, err := svc.Verify(tok); !errors.Is(err, ErrInvalid) {
		t.Fatalf("Verify(alg=none) error = %v, want ErrInvalid", err)
	}
}

func TestSetCookie(t *testing.T) {
	svc := NewService(testSecret, false) // production mode

	w := httptest.NewRecorder()
	svc.SetCookie(w, "tok-value")

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Name != CookieName {
		t.Errorf("cookie name = %q, want %q", c.Name, CookieName)
	}
	if !c.HttpOnly {
		t.Error("cookie is not HttpOnly")
	}
	if !c.Secure {
		t.Error("cookie is not Secure in production mode")
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Errorf("cookie SameSite = %v, want Lax", c.SameSite)
	}
	if c.MaxAge != int(TTL.Seconds()) {
		t.Errorf("cookie MaxAge = %d, want %d", c.MaxAge, int(TTL.Seconds()))
	}
}

func TestClearCookie(t *testing.T) {
	svc := testService(t)

	w := httptest.NewRecorder()
	svc.ClearCookie(w)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	if cookies[0].MaxAge != -1 {
		t.Errorf("cookie MaxAge = %d, want -1", cookies[0].MaxAge)
	}
	if cookies[0].Value != "" {
		t.Errorf("cookie value = %q, want empty", cookies[0].Value)
	}
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := FromRequest(r); got != "" {
		t.Errorf("FromRequest(no cookie) = %q, want empty", got)
	}

	r.AddCookie(&http.Cookie{Name: CookieName, Value: "tok"})
	if got := FromRequest(r); got != "tok" {
		t.Errorf("FromRequest = %q, want %q", got, "tok")
	}
}

func TestIssuedTokenHasThreeSegments(t *testing.T) {
	svc := testService(t)
	tok, err := svc.Issue(Subject{ID: 7, Email: "admin@example.com"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if parts := strings.Split(tok, "."); len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}
}
