/*
Copyright © 2025 Ava Project Authors
SPDX-License-Identifier: Apache-2.0
*/

package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructuredError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *StructuredError
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeUnknownTest, "unknown test qp_boundz"),
			want: "[UNKNOWN_TEST] unknown test qp_boundz",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeIO, "cannot write report", stderrors.New("permission denied")),
			want: "[IO_ERROR] cannot write report: permission denied",
		},
		{
			name: "formatted",
			err:  Newf(ErrCodeNoDevices, "serial %q not attached", "emulator-5554"),
			want: `[NO_DEVICES] serial "emulator-5554" not attached`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestStructuredError_Unwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(ErrCodeInternal, "wrapped", cause)

	assert.True(t, stderrors.Is(err, cause))

	var se *StructuredError
	assert.True(t, stderrors.As(err, &se))
	assert.Equal(t, ErrCodeInternal, se.Code)
}

func TestStructuredError_IsMatchesCode(t *testing.T) {
	err := fmt.Errorf("running: %w", New(ErrCodeFatalTest, "device emulator-5554"))
	assert.True(t, stderrors.Is(err, New(ErrCodeFatalTest, "any message")))
	assert.False(t, stderrors.Is(err, New(ErrCodeIO, "any message")))
}

func TestHasCode(t *testing.T) {
	inner := New(ErrCodeTimeout, "device invocation expired")
	wrapped := fmt.Errorf("test ping: %w", inner)

	assert.True(t, HasCode(wrapped, ErrCodeTimeout))
	assert.False(t, HasCode(wrapped, ErrCodeFatalTest))
	assert.False(t, HasCode(stderrors.New("plain"), ErrCodeTimeout))
	assert.False(t, HasCode(nil, ErrCodeTimeout))
}

func TestWrapWithContext(t *testing.T) {
	err := WrapWithContext(ErrCodeIO, "cannot open", stderrors.New("enoent"), map[string]any{
		"path": "/tmp/out.json",
	})
	assert.Equal(t, "/tmp/out.json", err.Context["path"])
	assert.Contains(t, err.Error(), "enoent")
}
