// Package signature verifies GPG detached signatures of downloaded index
// files against a local keyring.
package signature

import (
	"bytes"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/glorpus-work/boardman/pkg/errors"
)

// Suffix is appended to a file's name to locate its detached signature.
const Suffix = ".sig"

// PathFor returns the detached-signature path for a signed file.
func PathFor(signedPath string) string {
	return signedPath + Suffix
}

// Verifier checks detached signatures against a fixed keyring. A verifier
// without keys fails every check closed.
type Verifier struct {
	keyring openpgp.EntityList
}

// NewVerifier loads a keyring from disk, accepting both armored and binary
// serializations. A missing keyring file yields an empty verifier rather
// than an error; verification then fails closed until a keyring is provided.
func NewVerifier(keyringPath string) (*Verifier, error) {
	data, err := os.ReadFile(keyringPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Verifier{}, nil
		}
		return nil, errors.Wrapf(err, "failed to read keyring %s", keyringPath)
	}

	keyring, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	if err != nil {
		keyring, err = openpgp.ReadKeyRing(bytes.NewReader(data))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse keyring %s", keyringPath)
	}
	return &Verifier{keyring: keyring}, nil
}

// NewVerifierFromKeyring creates a verifier around an in-memory keyring.
func NewVerifierFromKeyring(keyring openpgp.EntityList) *Verifier {
	return &Verifier{keyring: keyring}
}

// HasKeys reports whether the verifier holds any keys at all.
func (v *Verifier) HasKeys() bool {
	return len(v.keyring) > 0
}

// Verify checks the detached signature at sigPath against the file at
// signedPath. It returns true only when the signature was produced by a key
// in the keyring; an empty keyring yields ErrKeyringMissing.
func (v *Verifier) Verify(signedPath, sigPath string) (bool, error) {
	if !v.HasKeys() {
		return false, errors.ErrKeyringMissing
	}

	signed, err := os.Open(signedPath)
	if err != nil {
		return false, errors.Wrapf(err, "failed to open signed file %s", signedPath)
	}
	defer func() { _ = signed.Close() }()

	sig, err := os.Open(sigPath)
	if err != nil {
		return false, errors.Wrapf(err, "failed to open signature %s", sigPath)
	}
	defer func() { _ = sig.Close() }()

	signer, err := openpgp.CheckDetachedSignature(v.keyring, signed, sig, nil)
	if err != nil || signer == nil {
		return false, nil
	}
	return true, nil
}
