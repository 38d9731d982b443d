package export

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"github.com/sourcegraph/conc/iter"
	"golang.org/x/crypto/argon2"
)

// HashType selects how author IDs are anonymized.
type HashType string

const (
	// HashTypeArgon2id derives the hash with Argon2id.
	HashTypeArgon2id HashType = "argon2id"
	// HashTypeSHA256 chains salted SHA256 rounds.
	HashTypeSHA256 HashType = "sha256"
)

// Valid reports whether h names a supported algorithm.
func (h HashType) Valid() bool {
	return h == HashTypeArgon2id || h == HashTypeSHA256
}

// HashID hashes a user ID with the salt. Memory is in MiB and only used by Argon2id.
func HashID(id int64, salt string, hashType HashType, iterations, memory uint32) string {
	idBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(idBytes, uint64(id)) //nolint:gosec // IDs are positive

	var sum []byte

	switch hashType {
	case HashTypeArgon2id:
		sum = argon2.IDKey(idBytes, []byte(salt), iterations, memory*1024, 1, 32)
	case HashTypeSHA256:
		sum = []byte(salt)

		h := sha256.New()
		for range iterations {
			h.Reset()
			h.Write(idBytes)
			h.Write(sum)
			sum = h.Sum(nil)
		}
	}

	return hex.EncodeToString(sum)
}

// hashIDs hashes every ID on at most concurrency goroutines, keeping the input order.
// Repeated IDs are hashed once.
func hashIDs(ids []int64, salt string, hashType HashType, concurrency int, iterations, memory uint32) []string {
	if len(ids) == 0 {
		return nil
	}

	unique := make([]int64, 0, len(ids))
	seen := make(map[int64]int, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = len(unique)
			unique = append(unique, id)
		}
	}

	mapper := iter.Mapper[int64, string]{MaxGoroutines: max(concurrency, 1)}
	hashed := mapper.Map(unique, func(id *int64) string {
		return HashID(*id, salt, hashType, iterations, memory)
	})

	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = hashed[seen[id]]
	}

	return out
}
