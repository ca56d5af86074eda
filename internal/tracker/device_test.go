package tracker

import (
	"strings"
	"testing"
)

func TestDeviceInfo(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want string
	}{
		{"chrome windows", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36", "Chrome/Windows"},
		{"edge windows", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36 Edg/124.0", "Edge/Windows"},
		{"firefox linux", "Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0", "Firefox/Linux"},
		{"safari mac", "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_4) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15", "Safari/macOS"},
		{"chrome android", "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Mobile Safari/537.36", "Chrome/Android"},
		{"safari iphone", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1", "Safari/iOS"},
		{"empty", "", "Unknown/Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeviceInfo(tt.ua); got != tt.want {
				t.Errorf("DeviceInfo() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultDeviceInfo(t *testing.T) {
	if got := DefaultDeviceInfo(); !strings.HasPrefix(got, "waystar/") {
		t.Errorf("DefaultDeviceInfo() = %q", got)
	}
}
