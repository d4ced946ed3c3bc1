// Package identity derives the stable identifier keying each offering's
// CraftID node. Re-ingesting the same (maker, product name) pair always
// lands on the same node; this is the pipeline's idempotence anchor.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
)

// Identify digests maker ++ productName to a lowercase hex string.
// Deterministic; empty inputs are valid.
func Identify(maker, productName string) string {
	sum := sha256.Sum224([]byte(maker + productName))
	return hex.EncodeToString(sum[:])
}
