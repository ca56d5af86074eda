package user

import "strings"

// DefaultAvatar is shown for users without an uploaded avatar.
const DefaultAvatar = "/img/defaultavatar.png"

// AvatarURL resolves an avatar path for display. Absolute http(s) URLs pass
// through, relative paths are joined to assetBase and an empty path falls
// back to DefaultAvatar.
func AvatarURL(assetBase, path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultAvatar
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(assetBase, "/") + path
}
