package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFingerprint(t *testing.T) {
	t.Run("identical text matches", func(t *testing.T) {
		assert.Equal(t, NewFingerprint("package main\n"), NewFingerprint("package main\n"))
	})

	t.Run("different text differs", func(t *testing.T) {
		assert.NotEqual(t, NewFingerprint("a"), NewFingerprint("b"))
	})

	t.Run("length counts runes not bytes", func(t *testing.T) {
		fp := NewFingerprint("héllo")
		assert.Equal(t, 5, fp.LenChars)
	})

	t.Run("empty text", func(t *testing.T) {
		fp := NewFingerprint("")
		assert.Equal(t, 0, fp.LenChars)
	})
}
