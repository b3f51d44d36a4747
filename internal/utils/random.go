package utils

import (
	"crypto/rand"
	"fmt"
	"strings"
)

func GenerateUUID() string {
	b := make([]byte, 16)
	rand.Read(b)

	// Set version (4) and variant bits
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80

	return strings.ToLower(fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:]))
}

// GenerateFileKey builds a collision-resistant object key for uploads,
// preserving the original extension.
func GenerateFileKey(prefix, filename string) string {
	ext := ""
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		ext = strings.ToLower(filename[idx:])
	}
	return fmt.Sprintf("%s/%s%s", prefix, GenerateUUID(), ext)
}
