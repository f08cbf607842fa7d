package cache

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{name: "valid", key: "tool:search:abc", wantErr: nil},
		{name: "empty", key: "", wantErr: ErrInvalidKey},
		{name: "whitespace", key: "   ", wantErr: ErrInvalidKey},
		{name: "newline", key: "tool:a\nb", wantErr: ErrInvalidKey},
		{name: "carriage return", key: "tool:a\rb", wantErr: ErrInvalidKey},
		{name: "at max length", key: strings.Repeat("k", MaxKeyLength), wantErr: nil},
		{name: "too long", key: strings.Repeat("k", MaxKeyLength+1), wantErr: ErrKeyTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateKey(tt.key); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateKey() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEffectiveTTL(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want time.Duration
	}{
		{in: 0, want: 0},
		{in: -time.Second, want: 0},
		{in: time.Millisecond, want: time.Second},
		{in: 999 * time.Millisecond, want: time.Second},
		{in: 1500 * time.Millisecond, want: time.Second},
		{in: 90 * time.Second, want: 90 * time.Second},
		{in: 2*time.Minute + 700*time.Millisecond, want: 2 * time.Minute},
	}

	for _, tt := range tests {
		if got := EffectiveTTL(tt.in); got != tt.want {
			t.Errorf("EffectiveTTL(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
