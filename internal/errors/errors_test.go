package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{
		ErrConfig,
		ErrContext,
		ErrCollect,
		ErrRender,
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "Unknown sort column: Bogus",
			suggestion: "Valid columns: ExchangesTotal, ExchangesCompleted",
		},
		{
			name:       "context error",
			code:       ErrContext,
			message:    "Context orders not found.",
			suggestion: "Known contexts: billing",
		},
		{
			name:       "collect error",
			code:       ErrCollect,
			message:    "Management registry unavailable",
			suggestion: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name          string
		err           *Error
		expectedParts []string
		notExpected   []string
	}{
		{
			name: "failure symbol and message",
			err:  New(ErrConfig, "Invalid interval: abc", "Use a whole number of milliseconds, like 1000"),
			expectedParts: []string{
				"✗ Invalid interval: abc",
				"Use a whole number of milliseconds, like 1000",
			},
		},
		{
			name: "cause is printed",
			err:  WrapWithCode(errors.New("registry closed"), ErrCollect, "Collection failed", ""),
			expectedParts: []string{
				"Collection failed",
				"registry closed",
			},
		},
		{
			name:          "no suggestion",
			err:           New(ErrRender, "Write failed", ""),
			expectedParts: []string{"Write failed"},
			notExpected:   []string{"\n\n  \n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := tt.err.Error()

			for _, part := range tt.expectedParts {
				assert.Contains(t, output, part, "output should contain %q", part)
			}
			for _, part := range tt.notExpected {
				assert.NotContains(t, output, part, "output should not contain %q", part)
			}
		})
	}
}

func TestErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", New(ErrContext, "Context x not found.", ""))

	var ctopErr *Error
	require.True(t, errors.As(wrapped, &ctopErr))
	assert.Equal(t, ErrContext, ctopErr.Code)
}

func TestIsCode(t *testing.T) {
	err := New(ErrConfig, "Config error", "")

	assert.True(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(err, ErrCollect))
	assert.False(t, IsCode(nil, ErrConfig))
	assert.False(t, IsCode(errors.New("plain"), ErrConfig))
}
