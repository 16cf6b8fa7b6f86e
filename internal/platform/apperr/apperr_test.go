package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestSentinel_SurvivesWrapping(t *testing.T) {
	sentinel := New(CodeConflict, "already exists")

	wrapped := fmt.Errorf("repo: %w", sentinel)
	if !errors.Is(wrapped, sentinel) {
		t.Fatalf("expected errors.Is to find sentinel through fmt wrap")
	}

	typed := Wrap(CodeInternal, sentinel, "outer")
	if !errors.Is(typed, sentinel) {
		t.Fatalf("expected errors.Is to find sentinel through Wrap")
	}
	if CodeOf(typed) != CodeInternal {
		t.Fatalf("expected outer code, got %s", CodeOf(typed))
	}
}

func TestWithDetails_DoesNotMutateSentinel(t *testing.T) {
	sentinel := New(CodeValidation, "bad input")
	withDetails := sentinel.WithDetails(map[string]string{"name": "is required"})

	if sentinel.Details() != nil {
		t.Fatalf("sentinel must stay without details")
	}
	if withDetails.Details() == nil {
		t.Fatalf("expected details on copy")
	}
}

func TestMetadataFor_UnknownFallsBackToInternal(t *testing.T) {
	if got := MetadataFor(Code("nope")).HTTPStatus; got != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", got)
	}
	if CodeOf(errors.New("plain")) != CodeInternal {
		t.Fatalf("plain errors must map to internal")
	}
}
