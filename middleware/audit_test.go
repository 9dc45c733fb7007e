package middleware

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestCaptureFormDataRedactsTokenFields(t *testing.T) {
	form := url.Values{}
	form.Set("platform", "twitter")
	form.Set("access_token", "supersecret")
	form.Set("code", "authcode123")

	r := httptest.NewRequest("POST", "/post", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	captured := captureFormData(r)

	if strings.Contains(captured, "supersecret") {
		t.Error("Expected access token to be redacted from form capture")
	}
	if strings.Contains(captured, "authcode123") {
		t.Error("Expected authorization code to be redacted from form capture")
	}
	if !strings.Contains(captured, "twitter") {
		t.Error("Expected non-sensitive fields to be preserved")
	}
	if !strings.Contains(captured, "[REDACTED]") {
		t.Error("Expected redaction marker in form capture")
	}
}

func TestGetIPAddressPrefersForwardedFor(t *testing.T) {
	r := httptest.NewRequest("POST", "/post", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	r.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")

	if ip := getIPAddress(r); ip != "203.0.113.5" {
		t.Errorf("Expected forwarded IP 203.0.113.5, got %s", ip)
	}
}
