package errors

import (
	"fmt"
	"testing"
)

func TestWrapWithCode(t *testing.T) {
	if Wrap(nil, "x") != nil || WrapWithCode(nil, CodeImage, "x") != nil {
		t.Fatal("wrapping nil produced an error")
	}

	err := WrapWithCode(fmt.Errorf("%w: status 404", ErrNotFound), CodeImage, "failed to load image")
	outer := Wrap(err, "post_1")

	if !IsNotFound(outer) {
		t.Error("sentinel lost through wrapping")
	}
	if IsInvalidInput(outer) || IsMalformed(outer) {
		t.Error("matched the wrong sentinel")
	}
	if got := GetCode(err); got != CodeImage {
		t.Errorf("GetCode = %q, want %q", got, CodeImage)
	}
	// Only the outermost *Error is consulted.
	if got := GetCode(outer); got != "" {
		t.Errorf("GetCode(outer) = %q, want empty", got)
	}
	if got := err.Error(); got != "failed to load image: not found: status 404" {
		t.Errorf("Error() = %q", got)
	}
}
