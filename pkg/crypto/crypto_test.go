package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	encrypted, err := Encrypt("abcd efgh ijkl mnop", "test-secret")
	require.NoError(t, err)
	assert.NotEqual(t, "abcd efgh ijkl mnop", encrypted)

	decrypted, err := Decrypt(encrypted, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "abcd efgh ijkl mnop", decrypted)
}

func TestEncryptProducesDifferentCiphertexts(t *testing.T) {
	first, err := Encrypt("password", "test-secret")
	require.NoError(t, err)
	second, err := Encrypt("password", "test-secret")
	require.NoError(t, err)

	// Random nonce means identical plaintexts never share ciphertext
	assert.NotEqual(t, first, second)
}

func TestDecryptWithWrongKey(t *testing.T) {
	encrypted, err := Encrypt("password", "test-secret")
	require.NoError(t, err)

	_, err = Decrypt(encrypted, "other-secret")
	assert.Error(t, err)
}

func TestDecryptGarbage(t *testing.T) {
	_, err := Decrypt("not base64!!", "test-secret")
	assert.Error(t, err)

	_, err = Decrypt("YWJj", "test-secret") // valid base64, too short
	assert.Error(t, err)
}

func TestEmptySecretRejected(t *testing.T) {
	_, err := Encrypt("password", "")
	assert.Error(t, err)

	_, err = Decrypt("YWJj", "")
	assert.Error(t, err)
}
