package scriptstore

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPutScript(t *testing.T) {
	var gotPath, gotAuth string
	var gotRec Record
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotRec); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sekrit")
	defer c.Close()

	rec := Record{ScriptID: "abc123", UserID: "user1", Filename: "pilot.fountain", Format: "fountain"}
	if err := c.PutScript(context.Background(), rec); err != nil {
		t.Fatalf("put: %v", err)
	}
	if gotPath != "/scripts/user1/abc123" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer sekrit" {
		t.Errorf("unexpected auth header %q", gotAuth)
	}
	if gotRec.ScriptID != "abc123" || gotRec.Format != "fountain" {
		t.Errorf("unexpected record %+v", gotRec)
	}
}

func TestGetScript_NotFoundIsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k")
	rec, err := c.GetScript(context.Background(), "user1", "missing")
	if err != nil {
		t.Fatalf("expected nil error for 404, got %v", err)
	}
	if rec != nil {
		t.Errorf("expected nil record, got %+v", rec)
	}
}

func TestGetScript_DecodesRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Record{ScriptID: "abc123", Title: "Gravity Well"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k")
	rec, err := c.GetScript(context.Background(), "user1", "abc123")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec == nil || rec.Title != "Gravity Well" {
		t.Errorf("unexpected record %+v", rec)
	}
}

func TestListScripts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "10" {
			t.Errorf("expected limit=10, got %q", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"scripts": []Summary{{ScriptID: "a"}, {ScriptID: "b"}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k")
	got, err := c.ListScripts(context.Background(), "user1", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ScriptID != "a" {
		t.Errorf("unexpected listing %+v", got)
	}
}

func TestRetryableStatusCodes(t *testing.T) {
	for _, code := range []int{http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))
		c := NewClient(srv.URL, "k")
		err := c.PutScript(context.Background(), Record{UserID: "u", ScriptID: "s"})
		srv.Close()

		var re *RetryableError
		if !errors.As(err, &re) {
			t.Errorf("status %d: expected RetryableError, got %v", code, err)
			continue
		}
		if re.StatusCode != code {
			t.Errorf("expected code %d preserved, got %d", code, re.StatusCode)
		}
	}
}

func TestNonRetryableStatusCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k")
	err := c.PutScript(context.Background(), Record{UserID: "u", ScriptID: "s"})
	if err == nil {
		t.Fatal("expected error")
	}
	var re *RetryableError
	if errors.As(err, &re) {
		t.Errorf("expected permanent failure, got retryable: %v", err)
	}
}

func TestDeleteScript(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k")
	if err := c.DeleteScript(context.Background(), "user1", "abc123"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/scripts/user1/abc123" {
		t.Errorf("unexpected request %s %s", gotMethod, gotPath)
	}
}
