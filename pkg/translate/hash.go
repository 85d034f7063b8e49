package translate

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashText computes the SHA-256 hash of the trimmed text.
func HashText(text string) string {
	trimmed := strings.TrimSpace(text)
	hash := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(hash[:])
}

// CacheKey builds a cache key from a text hash, target language and model.
func CacheKey(hash, targetLang, model string) string {
	return hash + ":" + targetLang + ":" + model
}
