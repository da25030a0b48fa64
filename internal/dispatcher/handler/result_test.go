package handler_test

import (
	"errors"
	"testing"

	"github.com/dshills/pairjump/internal/dispatcher/handler"
)

func TestResultStatus(t *testing.T) {
	tests := []struct {
		status   handler.ResultStatus
		expected string
	}{
		{handler.StatusOK, "ok"},
		{handler.StatusNoOp, "no-op"},
		{handler.StatusError, "error"},
		{handler.ResultStatus(99), "unknown"},
	}

	for _, tc := range tests {
		if tc.status.String() != tc.expected {
			t.Errorf("ResultStatus(%d).String() = %q, want %q", tc.status, tc.status.String(), tc.expected)
		}
	}
}

func TestResultConstructors(t *testing.T) {
	tests := []struct {
		name   string
		result handler.Result
		status handler.ResultStatus
		msg    string
	}{
		{"Success", handler.Success(), handler.StatusOK, ""},
		{"SuccessWithData", handler.SuccessWithData("moved", 2), handler.StatusOK, ""},
		{"NoOp", handler.NoOp(), handler.StatusNoOp, ""},
		{"NoOpWithMessage", handler.NoOpWithMessage("nothing"), handler.StatusNoOp, "nothing"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.result.Status != tc.status {
				t.Errorf("expected %v, got %v", tc.status, tc.result.Status)
			}
			if tc.result.Message != tc.msg {
				t.Errorf("expected message %q, got %q", tc.msg, tc.result.Message)
			}
		})
	}
}

func TestErrorfWraps(t *testing.T) {
	sentinel := errors.New("boom")
	result := handler.Errorf("action failed: %w", sentinel)

	if !result.IsError() {
		t.Fatalf("expected StatusError, got %v", result.Status)
	}
	if !errors.Is(result.Error, sentinel) {
		t.Errorf("expected wrapped sentinel, got %v", result.Error)
	}
	if r := handler.Error(sentinel); r.Error != sentinel {
		t.Errorf("Error() did not keep the error")
	}
}

func TestResultData(t *testing.T) {
	r := handler.SuccessWithData("moved", 2)

	if v, ok := r.GetData("moved"); !ok || v != 2 {
		t.Errorf("GetData = %v, %v", v, ok)
	}
	if _, ok := r.GetData("missing"); ok {
		t.Error("missing key should report missing")
	}
	if _, ok := handler.NoOp().GetData("x"); ok {
		t.Error("nil data should report missing")
	}
}

func TestViewUpdateHelpers(t *testing.T) {
	r := handler.Success().WithRedraw().WithRevealCursor().WithMessage("moved")
	if !r.ViewUpdate.Redraw || !r.ViewUpdate.RevealCursor {
		t.Errorf("expected redraw and reveal, got %+v", r.ViewUpdate)
	}
	if r.Message != "moved" {
		t.Errorf("expected message, got %q", r.Message)
	}
}
