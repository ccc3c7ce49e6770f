package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeIdempotency, http.StatusConflict},
		{CodeInternal, http.StatusInternalServerError},
		{CodeDependency, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		if got := MetadataFor(tt.code).HTTPStatus; got != tt.status {
			t.Fatalf("MetadataFor(%s).HTTPStatus = %d, want %d", tt.code, got, tt.status)
		}
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	meta := MetadataFor(Code("NOPE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("boom")
	err := Wrap(CodeDependency, cause, "db: insert item")

	if !stdErrors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to survive errors.Is")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("expected dependency code got %s", err.Code())
	}
}

func TestAsUnwrapsThroughChain(t *testing.T) {
	inner := New(CodeNotFound, "item not found")
	outer := fmt.Errorf("handler: %w", inner)

	typed := As(outer)
	if typed == nil {
		t.Fatalf("expected typed error")
	}
	if typed.Code() != CodeNotFound {
		t.Fatalf("expected not-found got %s", typed.Code())
	}
}

func TestAsReturnsNilForPlainErrors(t *testing.T) {
	if As(stdErrors.New("plain")) != nil {
		t.Fatalf("plain errors should not convert")
	}
	if As(nil) != nil {
		t.Fatalf("nil should stay nil")
	}
}

func TestWithDetails(t *testing.T) {
	err := New(CodeValidation, "invalid input").WithDetails(map[string]string{"name": "is required"})
	details, ok := err.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected map details")
	}
	if details["name"] != "is required" {
		t.Fatalf("unexpected details: %v", details)
	}
}
