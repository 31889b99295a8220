package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"Valid", "writer@example.com", "writer@example.com", false},
		{"Uppercase Is Lowered", "Writer@Example.COM", "writer@example.com", false},
		{"Plus Addressing", "a+tag@mail.example.org", "a+tag@mail.example.org", false},
		{"No At Sign", "invalid", "", true},
		{"No Top Level Domain", "invalid@also", "", true},
		{"No Local Part", "invalid.also", "", true},
		{"Trailing Dot And Space", "invalid@also. ", "", true},
		{"Leading Space", " writer@example.com", "", true},
		{"Empty", "", "", true},
		{"Single Letter TLD", "a@b.c", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeEmail(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type sampleRequest struct {
	Name  *string `json:"name" validate:"required,min=1,max=5"`
	Email string  `json:"email" validate:"omitempty,strict_email"`
}

func TestStruct(t *testing.T) {
	t.Parallel()
	str := func(s string) *string { return &s }

	assert.NoError(t, Struct(sampleRequest{Name: str("abc"), Email: "a@b.co"}))

	err := Struct(sampleRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"name"`)
	assert.Contains(t, err.Error(), `"required"`)

	err = Struct(sampleRequest{Name: str("")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"min"`)

	err = Struct(sampleRequest{Name: str("toolong")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"max"`)

	err = Struct(sampleRequest{Name: str("ok"), Email: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"strict_email"`)
}
