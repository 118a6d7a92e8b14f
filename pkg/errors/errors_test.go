package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForDomainCodes(t *testing.T) {
	t.Parallel()

	cases := map[Code]int{
		CodeOutOfStock:        http.StatusConflict,
		CodeEmptyCart:         http.StatusUnprocessableEntity,
		CodeIllegalTransition: http.StatusUnprocessableEntity,
		CodeInvalidRating:     http.StatusBadRequest,
		CodeNotFound:          http.StatusNotFound,
	}
	for code, want := range cases {
		if got := MetadataFor(code).HTTPStatus; got != want {
			t.Errorf("MetadataFor(%s).HTTPStatus = %d, want %d", code, got, want)
		}
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	t.Parallel()

	meta := MetadataFor(Code("SOMETHING_ELSE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unexpected status for unknown code: %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("db down")
	err := Wrap(CodeDependency, cause, "load product")

	typed := As(fmt.Errorf("outer: %w", err))
	if typed == nil {
		t.Fatal("expected typed error through wrapping")
	}
	if typed.Code() != CodeDependency {
		t.Fatalf("unexpected code: %s", typed.Code())
	}
	if typed.Unwrap() != cause {
		t.Fatal("expected cause to be preserved")
	}
}

func TestAsNilAndForeignErrors(t *testing.T) {
	t.Parallel()

	if As(nil) != nil {
		t.Fatal("expected nil for nil error")
	}
	if As(fmt.Errorf("plain")) != nil {
		t.Fatal("expected nil for untyped error")
	}
}
