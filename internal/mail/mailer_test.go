package mail

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewMailer_DisabledWithoutCredentials(t *testing.T) {
	if NewMailer("", "", "hr@example.com", "RRHH") != nil {
		t.Error("missing API key should disable the mailer")
	}
	if NewMailer("key", "", "", "RRHH") != nil {
		t.Error("missing sender should disable the mailer")
	}
}

func TestSend(t *testing.T) {
	var captured sendRequest
	var auth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/mail/send" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	mailer := NewMailer("sg-key", server.URL, "hr@example.com", "Recursos Humanos")
	if err := mailer.Send("empleado@example.com", "Notificación de Incidente", "<p>Hola</p>"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if auth != "Bearer sg-key" {
		t.Errorf("Authorization = %q", auth)
	}
	if len(captured.Personalizations) != 1 || captured.Personalizations[0].To[0].Email != "empleado@example.com" {
		t.Error("payload should address the recipient")
	}
	if captured.From.Email != "hr@example.com" || captured.From.Name != "Recursos Humanos" {
		t.Errorf("unexpected sender: %+v", captured.From)
	}
	if captured.Subject != "Notificación de Incidente" {
		t.Errorf("subject = %q", captured.Subject)
	}
	if captured.Content[0].Type != "text/html" {
		t.Errorf("content type = %q", captured.Content[0].Type)
	}
}

func TestSend_APIErrorIncludesDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer server.Close()

	mailer := NewMailer("wrong", server.URL, "hr@example.com", "")
	err := mailer.Send("empleado@example.com", "x", "y")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "401") || !strings.Contains(err.Error(), "bad key") {
		t.Errorf("error should carry status and body detail: %v", err)
	}
}
