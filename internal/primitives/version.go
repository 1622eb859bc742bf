package primitives

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// Fingerprint identifies a tree description. A user-provided Version wins;
// otherwise it is the first 8 bytes of SHA-256 over the config's JSON form,
// which is stable because map keys are encoded sorted.
func Fingerprint(cfg *TreeConfig) string {
	if cfg.Version != "" {
		return cfg.Version
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return "invalid"
	}
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%x", sum[:8])
}
