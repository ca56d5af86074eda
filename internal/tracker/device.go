package tracker

import (
	"runtime"
	"strings"
)

const unknown = "Unknown"

// DeviceInfo derives a "Browser/OS" label from a user agent string.
func DeviceInfo(userAgent string) string {
	return browserName(userAgent) + "/" + osName(userAgent)
}

func browserName(ua string) string {
	switch {
	case strings.Contains(ua, "Firefox"):
		return "Firefox"
	case strings.Contains(ua, "Edg"):
		return "Edge"
	case strings.Contains(ua, "Chrome"):
		return "Chrome"
	case strings.Contains(ua, "Safari"):
		return "Safari"
	default:
		return unknown
	}
}

// Android agents also mention Linux and iOS agents mention Mac OS X, so the
// mobile systems are checked first.
func osName(ua string) string {
	switch {
	case strings.Contains(ua, "Win"):
		return "Windows"
	case strings.Contains(ua, "Android"):
		return "Android"
	case strings.Contains(ua, "iPhone"), strings.Contains(ua, "iPad"), strings.Contains(ua, "iOS"):
		return "iOS"
	case strings.Contains(ua, "Mac"):
		return "macOS"
	case strings.Contains(ua, "Linux"):
		return "Linux"
	default:
		return unknown
	}
}

// DefaultDeviceInfo describes the running CLI, e.g. "waystar/Linux".
func DefaultDeviceInfo() string {
	os := unknown
	switch runtime.GOOS {
	case "windows":
		os = "Windows"
	case "darwin":
		os = "macOS"
	case "linux":
		os = "Linux"
	case "android":
		os = "Android"
	case "ios":
		os = "iOS"
	}
	return "waystar/" + os
}
