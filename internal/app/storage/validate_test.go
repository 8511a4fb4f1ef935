package storage

import (
	"testing"

	"meetrix/internal/pkg/errs"
)

func TestValidateFileSize(t *testing.T) {
	tests := []struct {
		name     string
		size     int64
		wantCode int
	}{
		{"valid small file", 1024, 0},
		{"exactly at limit", MaxAttachmentSize, 0},
		{"one byte over limit", MaxAttachmentSize + 1, errs.ErrFileSizeTooLarge},
		{"zero size", 0, errs.ErrInvalidParams},
		{"negative size", -1, errs.ErrInvalidParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFileSize(tt.size)

			if tt.wantCode == 0 {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err.Code != tt.wantCode {
				t.Fatalf("expected code %d, got %d", tt.wantCode, err.Code)
			}
		})
	}
}

func TestValidateFileType(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		mimeType string
		wantOK   bool
	}{
		{"png", "diagram.png", "image/png", true},
		{"jpeg via jpg", "photo.jpg", "image/jpeg", true},
		{"jpeg via jpeg", "photo.jpeg", "image/jpeg", true},
		{"pdf", "worksheet.pdf", "application/pdf", true},
		{"mime case insensitive", "photo.PNG", "IMAGE/PNG", true},
		{"disallowed mime", "video.mp4", "video/mp4", false},
		{"extension mime mismatch", "photo.png", "image/jpeg", false},
		{"no extension", "README", "text/plain", false},
		{"empty mime", "photo.png", "", false},
		{"executable disguised as allowed mime", "payload.exe", "image/png", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFileType(tt.fileName, tt.mimeType)

			if tt.wantOK && err != nil {
				t.Fatalf("expected success, got %v", err)
			}
			if !tt.wantOK {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if err.Code != errs.ErrFileTypeInvalid {
					t.Fatalf("expected code %d, got %d", errs.ErrFileTypeInvalid, err.Code)
				}
			}
		})
	}
}
