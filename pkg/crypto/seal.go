package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"
)

// At-rest sealing for the durable token file. The key is derived from a
// passphrase with argon2id and the payload is sealed with NaCl secretbox,
// so a leaked token file is useless without the passphrase.

const (
	saltLength  = 16
	nonceLength = 24
	keyLength   = 32

	// argon2id parameters
	// @ref https://cheatsheetseries.owasp.org/cheatsheets/Password_Storage_Cheat_Sheet.html
	argonMemory      = 64 * 1024 // 64 MB
	argonIterations  = 3
	argonParallelism = 2
)

var (
	ErrPassphraseRequired = errors.New("passphrase is required")
	ErrSealedTooShort     = errors.New("sealed payload is truncated")
	ErrOpenFailed         = errors.New("could not open sealed payload")
)

// deriveKey stretches the passphrase into a secretbox key.
func deriveKey(passphrase string, salt []byte) *[keyLength]byte {
	var key [keyLength]byte
	raw := argon2.IDKey([]byte(passphrase), salt, argonIterations, argonMemory, argonParallelism, keyLength)
	copy(key[:], raw)
	return &key
}

// Seal encrypts plaintext under a passphrase-derived key. Layout of the
// output: salt || nonce || box.
func Seal(plaintext []byte, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, ErrPassphraseRequired
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	var nonce [nonceLength]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	key := deriveKey(passphrase, salt)

	out := make([]byte, 0, saltLength+nonceLength+len(plaintext)+secretbox.Overhead)
	out = append(out, salt...)
	out = append(out, nonce[:]...)
	return secretbox.Seal(out, plaintext, &nonce, key), nil
}

// Open decrypts a payload produced by Seal. It fails when the passphrase
// is wrong or the payload was tampered with.
func Open(sealed []byte, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, ErrPassphraseRequired
	}
	if len(sealed) < saltLength+nonceLength+secretbox.Overhead {
		return nil, ErrSealedTooShort
	}

	salt := sealed[:saltLength]
	var nonce [nonceLength]byte
	copy(nonce[:], sealed[saltLength:saltLength+nonceLength])

	key := deriveKey(passphrase, salt)

	plaintext, ok := secretbox.Open(nil, sealed[saltLength+nonceLength:], &nonce, key)
	if !ok {
		return nil, ErrOpenFailed
	}
	return plaintext, nil
}
