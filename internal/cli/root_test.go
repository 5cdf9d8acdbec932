package cli

import (
	"errors"
	"testing"

	ctoperrors "github.com/savoirtech/ctop/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestIsUnknownCommandError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unknown command error",
			err:  errors.New(`unknown command "foo" for "ctop"`),
			want: true,
		},
		{
			name: "unknown flag error",
			err:  errors.New(`unknown flag: --foo`),
			want: true,
		},
		{
			name: "unknown shorthand flag error",
			err:  errors.New(`unknown shorthand flag: 'x' in -x`),
			want: true,
		},
		{
			name: "other error",
			err:  errors.New("accepts 1 arg(s), received 0"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUnknownCommandError(tt.err))
		})
	}
}

func TestExtractUnknownCommand(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "standard cobra format",
			err:  errors.New(`unknown command "foo" for "ctop"`),
			want: "foo",
		},
		{
			name: "command with hyphen",
			err:  errors.New(`unknown command "my-ctx" for "ctop"`),
			want: "my-ctx",
		},
		{
			name: "no quotes returns empty",
			err:  errors.New("unknown command foo"),
			want: "",
		},
		{
			name: "single quote returns empty",
			err:  errors.New(`unknown command "foo`),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractUnknownCommand(tt.err))
		})
	}
}

func TestDescribeError(t *testing.T) {
	t.Run("unknown command", func(t *testing.T) {
		msg := describeError(errors.New(`unknown command "tops" for "ctop"`))
		assert.Contains(t, msg, "✗ Unknown command: tops")
		assert.Contains(t, msg, "ctop --help")
	})

	t.Run("structured error printed as is", func(t *testing.T) {
		err := ctoperrors.New(ctoperrors.ErrContext, "Context nope not found.", "Known contexts: billing")
		assert.Equal(t, err.Error(), describeError(err))
	})

	t.Run("plain cobra error", func(t *testing.T) {
		msg := describeError(errors.New("accepts 1 arg(s), received 0"))
		assert.Contains(t, msg, "✗ Invalid command line")
		assert.Contains(t, msg, "accepts 1 arg(s), received 0")
	})
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"top", "contexts", "version", "completion"} {
		assert.True(t, names[want], "missing %s command", want)
	}

	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("demo"))
}
