package utils

import (
	"hash/fnv"
	"strconv"
)

func HashStringToUint64(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// HashKey returns s hashed to a fixed-width hex string, suitable as a map or
// Redis key.
func HashKey(s string) string {
	sum := strconv.FormatUint(HashStringToUint64(s), 16)
	for len(sum) < 16 {
		sum = "0" + sum
	}
	return sum
}
