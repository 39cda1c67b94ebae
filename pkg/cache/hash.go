package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Hash returns the hex SHA-256 of data. Sources are keyed by content, so a
// renamed or copied file reuses its cached layout.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// formatKey derives "prefix:<sha256>" from a source hash and the layout
// options. Every option that changes the output is part of the digest.
func formatKey(prefix, sourceHash string, opts FormatKeyOpts) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%d\x00%d\x00%s", sourceHash, opts.Width, opts.Indent, opts.Policy)
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}
