package chunkz

import (
	"errors"
	"testing"
)

func TestResult_Success(t *testing.T) {
	r := NewSuccess(42)

	if !r.IsSuccess() || r.IsError() {
		t.Error("expected a success Result")
	}
	if r.Value() != 42 {
		t.Errorf("expected value 42, got %d", r.Value())
	}
	if r.Error() != nil {
		t.Errorf("expected nil error, got %v", r.Error())
	}
	if r.ValueOr(0) != 42 {
		t.Errorf("expected ValueOr to return the value, got %d", r.ValueOr(0))
	}
}

func TestResult_Error(t *testing.T) {
	cause := errors.New("boom")
	r := NewError[int](cause)

	if r.IsSuccess() || !r.IsError() {
		t.Error("expected an error Result")
	}
	if !errors.Is(r.Error(), cause) {
		t.Errorf("expected error %v, got %v", cause, r.Error())
	}
	if r.ValueOr(7) != 7 {
		t.Errorf("expected fallback 7, got %d", r.ValueOr(7))
	}
}

func TestResult_ValuePanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected Value() to panic on an error Result")
		}
	}()
	NewError[string](errors.New("boom")).Value()
}
