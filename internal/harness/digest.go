package harness

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/text/unicode/norm"
)

// DomainReport prefixes report digests. The version suffix allows the digest
// algorithm to change without colliding with stored values.
const DomainReport = "nrcfold/report/v1"

// Digest returns SHA256(domain + 0x00 + NFC(report)) in hex.
func Digest(report string) string {
	h := sha256.New()
	h.Write([]byte(DomainReport))
	h.Write([]byte{0x00})
	h.Write([]byte(norm.NFC.String(report)))
	return hex.EncodeToString(h.Sum(nil))
}
