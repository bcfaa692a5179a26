package ir

import (
	"crypto/sha256"
	"encoding/hex"
)

// DomainArtifact is the domain prefix for content-addressed artifact
// identity. Version suffix enables future algorithm migration.
const DomainArtifact = "omir/artifact/v1"

// ArtifactID computes the content-addressed identity of an emitted artifact.
// Emission is deterministic, so the id is stable across runs given the same
// input circuit.
//
// Format: SHA256(domain + 0x00 + text). The null separator prevents
// domain/data boundary ambiguity.
func ArtifactID(text []byte) string {
	h := sha256.New()
	h.Write([]byte(DomainArtifact))
	h.Write([]byte{0x00})
	h.Write(text)
	return hex.EncodeToString(h.Sum(nil))
}
