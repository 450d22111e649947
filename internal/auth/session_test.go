package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"outlay/internal/api"
)

func TestSession_TokenPresenceIsAuthenticatedState(t *testing.T) {
	s := NewSession("", nil)
	if s.Authenticated() {
		t.Error("empty session reports authenticated")
	}

	if err := s.SetToken("tok"); err != nil {
		t.Fatal(err)
	}
	if !s.Authenticated() || s.Token() != "tok" {
		t.Errorf("token = %q, authenticated = %v", s.Token(), s.Authenticated())
	}

	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	if s.Authenticated() {
		t.Error("cleared session still authenticated")
	}
}

func TestSession_SeededTokenCountsAsLoggedIn(t *testing.T) {
	s := NewSession("persisted", nil)
	if !s.Authenticated() {
		t.Error("seeded session should be authenticated")
	}
}

func TestSession_SetTokenPersists(t *testing.T) {
	var persisted []string
	s := NewSession("", func(token string) error {
		persisted = append(persisted, token)
		return nil
	})

	if err := s.SetToken("abc"); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}

	if len(persisted) != 2 || persisted[0] != "abc" || persisted[1] != "" {
		t.Errorf("persisted = %v, want [abc \"\"]", persisted)
	}
}

func TestSession_MemoryFlipsEvenWhenPersistFails(t *testing.T) {
	s := NewSession("", func(string) error { return errors.New("disk full") })

	err := s.SetToken("tok")
	if err == nil {
		t.Fatal("expected persistence error")
	}
	if s.Token() != "tok" {
		t.Errorf("token = %q, want tok despite persist failure", s.Token())
	}
}

func newManager(t *testing.T, handler http.HandlerFunc, persist PersistFunc) (*Manager, *Session) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	session := NewSession("", persist)
	return NewManager(api.NewClient(srv.URL, session), session), session
}

func TestManagerLogin_StoresToken(t *testing.T) {
	var persisted string
	m, session := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"token": "fresh"}`))
	}, func(token string) error {
		persisted = token
		return nil
	})

	if err := m.Login(context.Background(), "ada", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.Token() != "fresh" {
		t.Errorf("session token = %q", session.Token())
	}
	if persisted != "fresh" {
		t.Errorf("persisted = %q", persisted)
	}
}

func TestManagerLogin_RejectionMapsToInvalidCredentials(t *testing.T) {
	cases := []struct {
		name   string
		status int
	}{
		{"unauthorized", http.StatusUnauthorized},
		{"bad request", http.StatusBadRequest},
		{"conflict", http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			persistCalls := 0
			m, session := newManager(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(`{"message": "no"}`))
			}, func(string) error {
				persistCalls++
				return nil
			})

			err := m.Login(context.Background(), "ada", "wrong")
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("err = %v, want ErrInvalidCredentials", err)
			}
			if session.Authenticated() {
				t.Error("session authenticated after rejected login")
			}
			if persistCalls != 0 {
				t.Errorf("persist called %d times on failure", persistCalls)
			}
		})
	}
}

func TestManagerLogin_ServerFailurePassesThrough(t *testing.T) {
	m, _ := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, nil)

	err := m.Login(context.Background(), "ada", "pw")
	if errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("server failure collapsed into ErrInvalidCredentials: %v", err)
	}
	var he *api.HTTPError
	if !errors.As(err, &he) || he.Status != 500 {
		t.Fatalf("err = %v, want HTTPError 500", err)
	}
}

func TestManagerRegister_StoresToken(t *testing.T) {
	m, session := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"token": "new-account"}`))
	}, nil)

	if err := m.Register(context.Background(), "new", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if session.Token() != "new-account" {
		t.Errorf("session token = %q", session.Token())
	}
}

func TestManagerLogout_ClearsSession(t *testing.T) {
	session := NewSession("tok", nil)
	m := NewManager(nil, session)

	if err := m.Logout(); err != nil {
		t.Fatal(err)
	}
	if session.Authenticated() {
		t.Error("still authenticated after logout")
	}
}
