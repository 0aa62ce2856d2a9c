package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/sha3"
)

const (
	// digestVersionTag is mixed into every digest so a future scheme
	// change cannot collide with v1 addresses. Never add a random salt:
	// the digest must be stable across restarts.
	digestVersionTag = "coinwall-v1:"

	addressPrefix = "MWC"
	addressHexLen = 16

	// MnemonicWordCount is the length of generated and imported passphrases.
	MnemonicWordCount = 12
)

// AddressService derives public wallet addresses from secret passphrases
// and generates fresh mnemonics. All derivation is deterministic and
// one-way; only the digest is ever persisted.
type AddressService struct{}

// NewAddressService creates a new AddressService.
func NewAddressService() *AddressService {
	return &AddressService{}
}

// Normalize canonicalizes a passphrase: lowercase, single spaces, trimmed.
// Digesting the normalized form makes exact-phrase lookup possible via
// digest equality without storing the raw words.
func (s *AddressService) Normalize(passphrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(passphrase)), " ")
}

// Digest returns the hex SHA3-256 digest of the normalized passphrase.
func (s *AddressService) Digest(passphrase string) string {
	sum := sha3.Sum256([]byte(digestVersionTag + s.Normalize(passphrase)))
	return hex.EncodeToString(sum[:])
}

// DeriveAddress formats the display address from a digest, e.g.
// MWC-1A2B-3C4D-5E6F-7A8B. The formatting is a display convention, not a
// security boundary.
func (s *AddressService) DeriveAddress(digest string) string {
	p := strings.ToUpper(digest[:addressHexLen])
	return fmt.Sprintf("%s-%s-%s-%s-%s", addressPrefix, p[0:4], p[4:8], p[8:12], p[12:16])
}

// GenerateMnemonic draws n words from the fixed wordlist using a
// cryptographically strong random source.
func (s *AddressService) GenerateMnemonic(n int) ([]string, error) {
	words := make([]string, n)
	max := big.NewInt(int64(len(wordlist)))
	for i := range words {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return nil, fmt.Errorf("drawing mnemonic word: %w", err)
		}
		words[i] = wordlist[idx.Int64()]
	}
	return words, nil
}
