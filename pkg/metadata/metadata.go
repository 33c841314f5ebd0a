// Package metadata provides provenance stamping for rendered report artifacts.
//
// A stamp is an HTML comment block appended to an artifact, carrying the
// generation time and a content hash. Verify detects artifacts that were
// hand-edited after rendering.
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// TagStart is the start of the stamp block.
	TagStart = "<!-- REPORT_META"
	// TagEnd is the end of the stamp block.
	TagEnd = "REPORT_META -->"
)

// Stamp verification errors.
var (
	ErrNoStampBlock = errors.New("no report stamp block found")
	ErrNoHashFound  = errors.New("no hash found in report stamp")
	ErrHashMismatch = errors.New("hash mismatch")
)

// Stamp contains the artifact provenance information.
type Stamp struct {
	GeneratedAt time.Time
	Generator   string
	Hash        string
}

// stampRegex matches the entire stamp block including tags.
var stampRegex = regexp.MustCompile(`(?s)<!--\s*REPORT_META\s*\n(.*?)\n\s*REPORT_META\s*-->`)

// Extract removes the stamp block from content and returns both the stamp
// and the cleaned content. The cleaned content is what gets hashed.
func Extract(content string) (*Stamp, string) {
	match := stampRegex.FindStringSubmatch(content)
	cleanContent := stampRegex.ReplaceAllString(content, "")
	cleanContent = strings.TrimRight(cleanContent, "\n")

	if len(match) < 2 {
		return nil, cleanContent
	}

	stamp := &Stamp{}

	for _, line := range strings.Split(match[1], "\n") {
		parts := strings.SplitN(strings.TrimSpace(line), ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])

		switch key {
		case "GENERATED_AT":
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				stamp.GeneratedAt = t
			}
		case "GENERATOR":
			stamp.Generator = val
		case "HASH":
			stamp.Hash = val
		}
	}

	return stamp, cleanContent
}

// CalculateHash computes the SHA-256 hash of the content (excluding any
// stamp block).
func CalculateHash(content string) string {
	_, clean := Extract(content)
	hash := sha256.Sum256([]byte(clean))

	return hex.EncodeToString(hash[:])
}

// Sign appends or replaces the stamp block with a fresh hash and the given
// generation time.
func Sign(content, generator string, generatedAt time.Time) string {
	_, clean := Extract(content)

	hash := CalculateHash(clean)
	at := generatedAt.UTC().Format(time.RFC3339)

	block := fmt.Sprintf("\n\n%s\nGENERATOR: %s\nGENERATED_AT: %s\nHASH: %s\n%s",
		TagStart, generator, at, hash, TagEnd)

	return clean + block
}

// Verify checks whether the content matches the hash in its stamp.
func Verify(content string) (bool, error) {
	stamp, clean := Extract(content)
	if stamp == nil {
		return false, ErrNoStampBlock
	}

	if stamp.Hash == "" {
		return false, ErrNoHashFound
	}

	calculated := CalculateHash(clean)
	if calculated != stamp.Hash {
		return false, fmt.Errorf("%w: expected %s, got %s", ErrHashMismatch, stamp.Hash, calculated)
	}

	return true, nil
}
