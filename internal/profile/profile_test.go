package profile

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfile(t *testing.T) {
	p := NewProfile("alt", "/home/user/homes/alt")

	assert.Equal(t, "alt", p.Name)
	assert.Equal(t, "/home/user/homes/alt", p.Path)
	assert.Empty(t, p.Note)
	assert.False(t, p.CreatedAt.IsZero())

	_, err := uuid.Parse(p.ID)
	assert.NoError(t, err, "profile ID should be a valid UUID")
}

func TestProfileValidate(t *testing.T) {
	valid := func() *Profile {
		return NewProfile("main", "/tmp/homes/main")
	}

	t.Run("valid profile passes", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("invalid ID rejected", func(t *testing.T) {
		p := valid()
		p.ID = "not-a-uuid"
		assert.Error(t, p.Validate())
	})

	t.Run("empty path rejected", func(t *testing.T) {
		p := valid()
		p.Path = ""
		assert.Error(t, p.Validate())
	})

	t.Run("long note rejected", func(t *testing.T) {
		p := valid()
		p.Note = strings.Repeat("x", 501)
		assert.Error(t, p.Validate())
	})

	t.Run("note at limit passes", func(t *testing.T) {
		p := valid()
		p.Note = strings.Repeat("x", 500)
		assert.NoError(t, p.Validate())
	})
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple name", input: "main", wantErr: false},
		{name: "name with spaces", input: "alt account", wantErr: false},
		{name: "unicode name", input: "аккаунт", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "too long", input: strings.Repeat("a", 101), wantErr: true},
		{name: "max length", input: strings.Repeat("a", 100), wantErr: false},
		{name: "forward slash", input: "foo/bar", wantErr: true},
		{name: "backslash", input: `foo\bar`, wantErr: true},
		{name: "dot", input: ".", wantErr: true},
		{name: "dot dot", input: "..", wantErr: true},
		{name: "control character", input: "foo\x00bar", wantErr: true},
		{name: "newline", input: "foo\nbar", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
