package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"hello@wearewacky.com", "hello@wearewacky.com", false},
		{"  Mixed.Case@Example.COM ", "mixed.case@example.com", false},
		{"", "", true},
		{"not-an-email", "", true},
		{"missing@tld", "", true},
		{"Ada <ada@example.com>", "", true},
		{"@example.com", "", true},
		{strings.Repeat("a", 250) + "@x.io", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Email(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEmail)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestErrors(t *testing.T) {
	errs := Errors{}

	assert.Equal(t, "Ada", errs.Required("name", "  Ada ", "required"))
	assert.True(t, errs.Empty())

	errs.Required("message", "   ", "Message is required")
	errs.Length("message", "", 10, 100, "too short")
	assert.Equal(t, "Message is required", errs["message"], "first message wins")

	errs.Length("company", "ąęć", 0, 2, "too long")
	assert.Equal(t, "too long", errs["company"])

	errs.Length("bio", strings.Repeat("x", 5000), 0, 0, "unbounded")
	assert.NotContains(t, errs, "bio")
	assert.False(t, errs.Empty())
}
