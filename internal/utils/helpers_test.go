package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNilIfEmpty(t *testing.T) {
	assert.Nil(t, NilIfEmpty(""))
	assert.Nil(t, NilIfEmpty("   "))
	got := NilIfEmpty("  DE123 ")
	if assert.NotNil(t, got) {
		assert.Equal(t, "DE123", *got)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", FirstNonEmpty("", " ", "b", "c"))
	assert.Equal(t, "", FirstNonEmpty())
	assert.Equal(t, "", FirstNonEmpty("", "  "))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "", FormatDate(nil))
	d := time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-09", FormatDate(&d))
}
