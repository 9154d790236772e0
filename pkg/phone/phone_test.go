package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain 10 digits", input: "9876543210", expected: "9876543210"},
		{name: "country code with separators", input: "+91 98765-43210", expected: "9876543210"},
		{name: "leading zero", input: "09876543210", expected: "9876543210"},
		{name: "short number kept", input: "12345", expected: "12345"},
		{name: "no digits", input: "abc", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	once := Normalize("+91 98765-43210")
	assert.Equal(t, once, Normalize(once))
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("(987) 654-3210"))
	assert.False(t, IsValid("987654321"))
}
