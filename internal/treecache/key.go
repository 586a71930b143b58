package treecache

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Digest identifies one cached treebank file.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// KeyOptions are the parse settings that change the resulting trees.
type KeyOptions struct {
	NormalizeNFC bool
	MaxWordLen   int
	SkipBlank    bool
}

// Key hashes the file content together with the options and the payload
// schema, so any change of either produces a different entry.
func Key(content []byte, opts KeyOptions) Digest {
	h := blake3.New()
	fmt.Fprintf(h, "treespan/%d nfc=%t maxword=%d skipblank=%t\n",
		schemaVersion, opts.NormalizeNFC, opts.MaxWordLen, opts.SkipBlank)
	_, _ = h.Write(content) //nolint:errcheck // hash.Hash never fails
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}
