package testutil

import (
	"bytes"
	"os"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/stretchr/testify/require"
)

// NewSigningEntity creates a fresh GPG identity whose private key can sign
// test indexes and whose public key can populate a verification keyring.
func NewSigningEntity(t *testing.T) *openpgp.Entity {
	t.Helper()

	entity, err := openpgp.NewEntity("Index Signer", "", "signer@example.com", nil)
	require.NoError(t, err)
	return entity
}

// WriteKeyring serializes the public halves of the given entities to path as
// a binary keyring.
func WriteKeyring(t *testing.T, path string, entities ...*openpgp.Entity) {
	t.Helper()

	var ring bytes.Buffer
	for _, entity := range entities {
		require.NoError(t, entity.Serialize(&ring))
	}
	require.NoError(t, os.WriteFile(path, ring.Bytes(), 0o644))
}

// SignDetached produces a binary detached signature over content.
func SignDetached(t *testing.T, signer *openpgp.Entity, content []byte) []byte {
	t.Helper()

	var sig bytes.Buffer
	require.NoError(t, openpgp.DetachSign(&sig, signer, bytes.NewReader(content), nil))
	return sig.Bytes()
}
