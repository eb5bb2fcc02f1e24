package upload

import (
	"strings"
	"testing"
)

func TestValidateImageBySniff(t *testing.T) {
	jpegHead := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	pngHead := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

	tests := []struct {
		name     string
		filename string
		head     []byte
		wantMime string
		wantErr  bool
	}{
		{"jpeg ok", "bowl.jpg", jpegHead, "image/jpeg", false},
		{"png ok", "vase.png", pngHead, "image/png", false},
		{"disallowed extension", "vase.svg", pngHead, "", true},
		{"no extension", "vase", pngHead, "", true},
		{"html masquerading as jpg", "evil.jpg", []byte("<html><script>"), "", true},
		{"xml masquerading as png", "evil.png", []byte(`<?xml version="1.0"?>`), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mime, err := ValidateImageBySniff(tt.filename, tt.head)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got mime %q", mime)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mime != tt.wantMime {
				t.Fatalf("mime = %q, want %q", mime, tt.wantMime)
			}
		})
	}
}

func TestValidateImageBySniffOctetStreamFallsBackToExtension(t *testing.T) {
	// An opaque but extension-whitelisted payload is allowed
	head := []byte{0x00, 0x01, 0x02, 0x03}
	mime, err := ValidateImageBySniff("photo.webp", head)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(mime, "application/octet-stream") {
		t.Fatalf("mime = %q, want octet-stream fallback", mime)
	}
}
