package gmail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/api/option"
)

func newTestBackend(t *testing.T, h http.HandlerFunc) *Backend {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	b, err := New(context.Background(), option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	return b
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func headers(kv ...string) []map[string]string {
	out := []map[string]string{}
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, map[string]string{"name": kv[i], "value": kv[i+1]})
	}
	return out
}

func TestSearch_ListsAndLoadsHeaders(t *testing.T) {
	var gotQ, gotMax string
	b := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/users/me/messages"):
			gotQ = r.URL.Query().Get("q")
			gotMax = r.URL.Query().Get("maxResults")
			writeJSON(w, map[string]any{"messages": []map[string]string{{"id": "m1", "threadId": "t1"}, {"id": "m2", "threadId": "t2"}}})
		case strings.HasSuffix(r.URL.Path, "/users/me/messages/m1"):
			writeJSON(w, map[string]any{
				"id": "m1", "threadId": "t1", "snippet": "see you there", "internalDate": "1700000000000",
				"payload": map[string]any{"headers": headers("Subject", "Lunch", "From", "Joi Ito <joi@example.com>")},
			})
		case strings.HasSuffix(r.URL.Path, "/users/me/messages/m2"):
			writeJSON(w, map[string]any{
				"id": "m2", "threadId": "t2",
				"payload": map[string]any{"headers": headers("Subject", "No sender", "Date", "Mon, 02 Jan 2006 15:04:05 -0700")},
			})
		default:
			http.NotFound(w, r)
		}
	})

	msgs, err := b.Search(context.Background(), "from:joi", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if gotQ != "from:joi" || gotMax != "10" {
		t.Fatalf("unexpected list params q=%q max=%q", gotQ, gotMax)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Subject != "Lunch" || msgs[0].Sender == nil || msgs[0].Sender.String() != "Joi Ito <joi@example.com>" {
		t.Fatalf("unexpected first message: %+v", msgs[0])
	}
	if msgs[0].Date == nil || msgs[0].Date.Unix() != 1700000000 {
		t.Fatalf("unexpected date: %v", msgs[0].Date)
	}
	if msgs[1].Sender != nil {
		t.Fatalf("expected nil sender, got %+v", msgs[1].Sender)
	}
	if msgs[1].Date == nil || msgs[1].Date.Year() != 2006 {
		t.Fatalf("expected date parsed from header, got %v", msgs[1].Date)
	}
}

func TestSearch_ZeroMaxSkipsAPI(t *testing.T) {
	b := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	})
	msgs, err := b.Search(context.Background(), "x", 0)
	if err != nil || len(msgs) != 0 {
		t.Fatalf("expected empty result, got %v %v", msgs, err)
	}
}

func TestGet_DecodesPlainTextBody(t *testing.T) {
	body := base64.URLEncoding.EncodeToString([]byte("Hello Joi,\nSee you at noon."))
	b := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("format") != "full" {
			t.Errorf("expected full format, got %q", r.URL.Query().Get("format"))
		}
		writeJSON(w, map[string]any{
			"id": "m1",
			"payload": map[string]any{
				"mimeType": "multipart/alternative",
				"headers":  headers("Subject", "Lunch", "From", "bot@example.com", "To", "A <a@example.com>, b@example.com"),
				"parts": []map[string]any{
					{"mimeType": "text/html", "body": map[string]any{"data": base64.URLEncoding.EncodeToString([]byte("<p>html</p>"))}},
					{"mimeType": "text/plain", "body": map[string]any{"data": body}},
				},
			},
		})
	})

	msg, err := b.Get(context.Background(), "m1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if msg.BodyText != "Hello Joi,\nSee you at noon." {
		t.Fatalf("unexpected body: %q", msg.BodyText)
	}
	if len(msg.To) != 2 || msg.To[0].String() != "A <a@example.com>" || msg.To[1].String() != "b@example.com" {
		t.Fatalf("unexpected recipients: %+v", msg.To)
	}
	if msg.Sender == nil || msg.Sender.String() != "bot@example.com" {
		t.Fatalf("unexpected sender: %+v", msg.Sender)
	}
}

func TestGet_FallsBackToHTML(t *testing.T) {
	b := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"id": "m1",
			"payload": map[string]any{
				"mimeType": "text/html",
				"body":     map[string]any{"data": base64.RawURLEncoding.EncodeToString([]byte("<html><body><p>Hi <b>there</b></p></body></html>"))},
			},
		})
	})
	msg, err := b.Get(context.Background(), "m1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if msg.BodyText != "Hi there" {
		t.Fatalf("unexpected body: %q", msg.BodyText)
	}
}

func TestGet_APIErrorPropagates(t *testing.T) {
	b := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":404,"message":"Requested entity was not found."}}`, http.StatusNotFound)
	})
	if _, err := b.Get(context.Background(), "missing"); err == nil {
		t.Fatalf("expected error")
	}
}
