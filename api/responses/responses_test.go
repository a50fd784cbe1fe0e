package responses

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/jordanvasquez/threadline-backend/pkg/errors"
)

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]any{"success": true, "message": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["success"] != true {
		t.Fatalf("expected success=true, got %v", body)
	}
}

func TestWriteErrorMapsCodeToStatus(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "not found keeps its message",
			err:        pkgerrors.New(pkgerrors.CodeNotFound, "product not found"),
			wantStatus: http.StatusNotFound,
			wantMsg:    "product not found",
		},
		{
			name:       "insufficient stock is a conflict",
			err:        pkgerrors.New(pkgerrors.CodeInsufficientStock, "requested quantity exceeds available inventory"),
			wantStatus: http.StatusConflict,
			wantMsg:    "requested quantity exceeds available inventory",
		},
		{
			name:       "internal hides the message",
			err:        pkgerrors.New(pkgerrors.CodeInternal, "db exploded"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal server error",
		},
		{
			name:       "untyped error becomes internal",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal server error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(context.Background(), nil, rec, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}

			var body ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Success {
				t.Fatal("error envelope must report success=false")
			}
			if body.Message != tc.wantMsg {
				t.Fatalf("expected message %q, got %q", tc.wantMsg, body.Message)
			}
		})
	}
}
