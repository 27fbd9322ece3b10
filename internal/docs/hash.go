package docs

import (
	"crypto/sha256"
	"encoding/hex"
)

func contentHash(content []byte) string {
	h := sha256.Sum256(content)
	return hex.EncodeToString(h[:])
}

// Hash computes a deterministic digest over document IDs, source paths and
// content hashes. Two scans of an unchanged tree produce the same value.
func (i *Index) Hash() string {
	h := sha256.New()
	if len(i.docs) == 0 {
		h.Write([]byte("empty-docs-set"))
	}
	for _, d := range i.docs {
		h.Write([]byte(d.ID + "|" + d.RelativePath + "|" + d.ContentHash + "\n"))
	}
	return hex.EncodeToString(h.Sum(nil))
}
