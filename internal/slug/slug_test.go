package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromTitle(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Getting Started", "getting-started"},
		{"  Hello,   World!  ", "hello-world"},
		{"Café Crème", "cafe-creme"},
		{"API v2 -- Reference", "api-v2-reference"},
		{"snake_case stays", "snake_case-stays"},
		{"はじめに", ""},
		{"Install 手順 Guide", "install-guide"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, FromTitle(tt.title))
		})
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("getting-started"))
	assert.True(t, Valid("v2_api"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("-lead"))
	assert.False(t, Valid("trail-"))
	assert.False(t, Valid("Upper"))
	assert.False(t, Valid("has space"))
	assert.False(t, Valid("a/b"))
	assert.False(t, Valid("日本"))
}
