package secondary

import (
	"encoding/hex"
	"fmt"
	"strings"

	"lukechampine.com/blake3"
)

// Hash returns a deterministic hex-encoded blake3 fingerprint of the
// annotation. Two structures that annotate identically share a
// fingerprint, which makes it a cheap equality check across runs and
// machines.
func (a *Annotation) Hash() string {
	var builder strings.Builder
	for _, f := range a.Fragments {
		fmt.Fprintf(&builder, "%s:%d:%d:%d;", f.ChainID, f.Start, f.End, f.Type)
	}
	builder.Write(a.symbols)
	sum := blake3.Sum256([]byte(builder.String()))
	return hex.EncodeToString(sum[:])
}
