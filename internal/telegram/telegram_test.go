package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNew_RequiresCredentials(t *testing.T) {
	if _, err := New("", "@chan"); err == nil {
		t.Error("expected error for missing token")
	}
	if _, err := New("123:abc", ""); err == nil {
		t.Error("expected error for missing chat id")
	}
	if _, err := New("123:abc", "@chan"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSendMessage(t *testing.T) {
	var got map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/sendMessage") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if !strings.Contains(r.URL.Path, "bot123:abc") {
			t.Errorf("token missing from path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		fmt.Fprint(w, `{"ok":true,"result":{"message_id":1}}`)
	}))
	defer ts.Close()

	c, err := New("123:abc", "@nikavisa", WithBaseURL(ts.URL))
	if err != nil {
		t.Fatal(err)
	}

	if err := c.SendMessage(context.Background(), "<b>سلام</b>"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	if got["chat_id"] != "@nikavisa" {
		t.Errorf("chat_id = %v", got["chat_id"])
	}
	if got["parse_mode"] != "HTML" {
		t.Errorf("parse_mode = %v", got["parse_mode"])
	}
	if got["text"] != "<b>سلام</b>" {
		t.Errorf("text = %v", got["text"])
	}
}

func TestSendMessage_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"ok":false,"error_code":400,"description":"Bad Request: can't parse entities"}`)
	}))
	defer ts.Close()

	c, _ := New("123:abc", "@nikavisa", WithBaseURL(ts.URL))
	err := c.SendMessage(context.Background(), "broken <b>")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "can't parse entities") {
		t.Errorf("error missing API description: %v", err)
	}
}

func TestSendPoll(t *testing.T) {
	var got map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/sendPoll") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer ts.Close()

	c, _ := New("123:abc", "@nikavisa", WithBaseURL(ts.URL))
	err := c.SendPoll(context.Background(), "کدام موضوع؟", []string{"الف", "ب"})
	if err != nil {
		t.Fatalf("send poll failed: %v", err)
	}

	if got["question"] != "کدام موضوع؟" {
		t.Errorf("question = %v", got["question"])
	}
	opts, ok := got["options"].([]interface{})
	if !ok || len(opts) != 2 {
		t.Errorf("options = %v", got["options"])
	}
}

func TestSendPoll_TooFewOptions(t *testing.T) {
	c, _ := New("123:abc", "@nikavisa")
	if err := c.SendPoll(context.Background(), "q", []string{"only one"}); err == nil {
		t.Error("expected error for one-option poll")
	}
}

func TestCall_UnreadableBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "<html>upstream error</html>")
	}))
	defer ts.Close()

	c, _ := New("123:abc", "@nikavisa", WithBaseURL(ts.URL))
	err := c.SendMessage(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("expected status in error, got %v", err)
	}
}
