package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]byte("profile contents"))
	b := Fingerprint([]byte("profile contents"))
	c := Fingerprint([]byte("profile contents changed"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestFingerprintEmpty(t *testing.T) {
	// xxHash64 of the empty input is a fixed constant.
	assert.Equal(t, uint64(0xef46db3751d8e999), Fingerprint(nil))
	assert.Equal(t, Fingerprint(nil), Fingerprint([]byte{}))
}
