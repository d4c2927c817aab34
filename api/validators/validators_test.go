package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/salestrack/salestrack-backend/pkg/errors"
)

type samplePayload struct {
	Email string `json:"email" validate:"required,email"`
	Year  int    `json:"year" validate:"required,min=2020,max=2030"`
}

func jsonRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestDecodeJSONBodyValid(t *testing.T) {
	var payload samplePayload
	if err := DecodeJSONBody(jsonRequest(`{"email":"dana@example.com","year":2026}`), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Email != "dana@example.com" || payload.Year != 2026 {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestDecodeJSONBodyMalformedJSON(t *testing.T) {
	var payload samplePayload
	err := DecodeJSONBody(jsonRequest(`{"email":`), &payload)
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestDecodeJSONBodyUnknownField(t *testing.T) {
	var payload samplePayload
	err := DecodeJSONBody(jsonRequest(`{"email":"dana@example.com","year":2026,"extra":true}`), &payload)
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR for unknown field, got %v", err)
	}
}

func TestDecodeJSONBodyFieldErrorsUseJSONNames(t *testing.T) {
	var payload samplePayload
	err := DecodeJSONBody(jsonRequest(`{"email":"not-an-email","year":1999}`), &payload)
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	details, ok := pkgerrors.As(err).Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field detail map, got %T", pkgerrors.As(err).Details())
	}
	if details["email"] != "must be a valid email" {
		t.Fatalf("unexpected email detail %q", details["email"])
	}
	if details["year"] == "" {
		t.Fatal("expected year detail keyed by json name")
	}
}

func TestParseQueryInt(t *testing.T) {
	cases := []struct {
		name    string
		url     string
		wantVal int
		wantErr bool
	}{
		{"absent uses default", "/?other=1", 7, false},
		{"valid", "/?page=3", 3, false},
		{"non-numeric", "/?page=abc", 0, true},
		{"below range", "/?page=0", 0, true},
		{"above range", "/?page=101", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			got, err := ParseQueryInt(req, "page", 7, 1, 100)
			if tc.wantErr {
				if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
					t.Fatalf("expected VALIDATION_ERROR, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.wantVal {
				t.Fatalf("got %d, want %d", got, tc.wantVal)
			}
		})
	}
}

func TestParseOptionalQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?month=4", nil)
	month, err := ParseOptionalQueryInt(req, "month", 1, 12)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if month == nil || *month != 4 {
		t.Fatalf("expected 4, got %v", month)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	month, err = ParseOptionalQueryInt(req, "month", 1, 12)
	if err != nil || month != nil {
		t.Fatalf("expected nil for absent param, got %v err=%v", month, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/?month=13", nil)
	if _, err := ParseOptionalQueryInt(req, "month", 1, 12); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}
