package metadata

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var testTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func TestSignAppendsStamp(t *testing.T) {
	content := "<html><body>report</body></html>"

	signed := Sign(content, "opptracker", testTime)

	if !strings.Contains(signed, TagStart) {
		t.Error("Signed content missing stamp start tag")
	}

	if !strings.Contains(signed, "GENERATOR: opptracker") {
		t.Error("Signed content missing generator line")
	}

	if !strings.Contains(signed, "GENERATED_AT: 2026-03-14T09:30:00Z") {
		t.Error("Signed content missing generation time")
	}

	if !strings.HasPrefix(signed, content) {
		t.Error("Signed content should start with the original content")
	}
}

func TestSignIsIdempotent(t *testing.T) {
	content := "# Digest\n\nSome content here.\n"

	once := Sign(content, "opptracker", testTime)
	twice := Sign(once, "opptracker", testTime)

	if once != twice {
		t.Error("Signing twice should produce identical output")
	}

	if strings.Count(twice, TagStart) != 1 {
		t.Errorf("Expected exactly 1 stamp block, got %d", strings.Count(twice, TagStart))
	}
}

func TestExtract(t *testing.T) {
	content := "body text"
	signed := Sign(content, "opptracker", testTime)

	stamp, clean := Extract(signed)
	if stamp == nil {
		t.Fatal("Expected a stamp to be extracted")
	}

	if stamp.Generator != "opptracker" {
		t.Errorf("Expected generator 'opptracker', got %q", stamp.Generator)
	}

	if !stamp.GeneratedAt.Equal(testTime) {
		t.Errorf("Expected generation time %v, got %v", testTime, stamp.GeneratedAt)
	}

	if stamp.Hash == "" {
		t.Error("Expected a non-empty hash")
	}

	if clean != content {
		t.Errorf("Expected clean content %q, got %q", content, clean)
	}
}

func TestExtractNoStamp(t *testing.T) {
	stamp, clean := Extract("plain content")
	if stamp != nil {
		t.Errorf("Expected no stamp, got %+v", stamp)
	}

	if clean != "plain content" {
		t.Errorf("Expected content unchanged, got %q", clean)
	}
}

func TestVerifyValid(t *testing.T) {
	signed := Sign("report body", "opptracker", testTime)

	ok, err := Verify(signed)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if !ok {
		t.Error("Expected valid stamp to verify")
	}
}

func TestVerifyTamperedContent(t *testing.T) {
	signed := Sign("report body", "opptracker", testTime)
	tampered := strings.Replace(signed, "report body", "edited body", 1)

	ok, err := Verify(tampered)
	if ok {
		t.Error("Expected tampered content to fail verification")
	}

	if !errors.Is(err, ErrHashMismatch) {
		t.Errorf("Expected ErrHashMismatch, got %v", err)
	}
}

func TestVerifyNoStamp(t *testing.T) {
	_, err := Verify("unsigned content")
	if !errors.Is(err, ErrNoStampBlock) {
		t.Errorf("Expected ErrNoStampBlock, got %v", err)
	}
}

func TestCalculateHashIgnoresStamp(t *testing.T) {
	content := "stable content"

	plain := CalculateHash(content)
	signed := CalculateHash(Sign(content, "opptracker", testTime))

	if plain != signed {
		t.Error("Hash should be identical with and without a stamp block")
	}
}
