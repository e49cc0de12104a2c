package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashService(t *testing.T) {
	hs := NewHashServiceWithCost(bcrypt.MinCost)

	h, err := hs.HashPassword("@@@123@@@")
	require.NoError(t, err)
	assert.NotEqual(t, "@@@123@@@", h)
	assert.True(t, hs.CheckPasswordHash("@@@123@@@", h))
	assert.False(t, hs.CheckPasswordHash("@@@124@@@", h))
}

func TestHashService_TooLong(t *testing.T) {
	long := make([]byte, 100)
	for i := range long {
		long[i] = 'a'
	}
	_, err := NewHashServiceWithCost(bcrypt.MinCost).HashPassword(string(long))
	assert.ErrorIs(t, err, ErrFailedToHashPassword)
}

func TestPlainHasher(t *testing.T) {
	var p PlainHasher
	h, err := p.HashPassword("x")
	require.NoError(t, err)
	assert.Equal(t, "x", h)
	assert.True(t, p.CheckPasswordHash("x", "x"))
	assert.False(t, p.CheckPasswordHash("X", "x"))
}

func TestNew(t *testing.T) {
	h, err := New("")
	require.NoError(t, err)
	assert.IsType(t, &HashService{}, h)

	h, err = New(ModePlain)
	require.NoError(t, err)
	assert.IsType(t, PlainHasher{}, h)

	_, err = New("md5")
	assert.Error(t, err)
}
