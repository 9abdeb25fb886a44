package transfer

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// DefaultDigest is used when no hash algorithm is configured.
const DefaultDigest = "sha256"

// Digest is a named hash algorithm.
type Digest struct {
	Name string
	New  func() hash.Hash
}

var digests = map[string]Digest{
	"sha256":      {Name: "sha256", New: sha256.New},
	"sha512":      {Name: "sha512", New: sha512.New},
	"sha3-256":    {Name: "sha3-256", New: sha3.New256},
	"blake2b-256": {Name: "blake2b-256", New: newBlake2b256},
}

// New256 only fails for keys longer than 64 bytes.
func newBlake2b256() hash.Hash {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}
	return h
}

// LookupDigest finds a hash algorithm by name, case-insensitively.
func LookupDigest(name string) (Digest, bool) {
	d, ok := digests[strings.ToLower(name)]
	return d, ok
}

// DigestNames returns the supported algorithm names in sorted order.
func DigestNames() []string {
	names := make([]string, 0, len(digests))
	for name := range digests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
