package auth

import (
	"context"
	"net/http/httptest"
	"testing"
)

func TestStaticAuthorizer(t *testing.T) {
	a := NewStaticAuthorizer(map[string]string{"sk_abc": "alice"})

	actor, err := a.Authorize(context.Background(), "sk_abc")
	if err != nil || actor.UserID != "alice" {
		t.Fatalf("Authorize: actor=%v err=%v", actor, err)
	}
	if _, err := a.Authorize(context.Background(), "sk_wrong"); err != ErrInvalidAPIKey {
		t.Fatalf("bad key: want ErrInvalidAPIKey, got %v", err)
	}
}

func TestExtractAPIKey(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	if _, err := ExtractAPIKey(r); err != ErrMissingAPIKey {
		t.Fatalf("no header: want ErrMissingAPIKey, got %v", err)
	}

	r.Header.Set("Authorization", "Basic abc")
	if _, err := ExtractAPIKey(r); err == nil {
		t.Fatal("non-bearer header should fail")
	}

	r.Header.Set("Authorization", "Bearer sk_abc")
	key, err := ExtractAPIKey(r)
	if err != nil || key != "sk_abc" {
		t.Fatalf("bearer: key=%q err=%v", key, err)
	}
}
