package admin

import (
	"net/url"
	"strings"
)

const avatarService = "https://ui-avatars.com/api/"

// AvatarURL returns a generated initials avatar for an admin, named by the
// full name when present and the username otherwise.
func AvatarURL(fullName, username string) string {
	name := strings.TrimSpace(fullName)
	if name == "" {
		name = username
	}
	q := url.Values{}
	q.Set("name", name)
	q.Set("background", "667eea")
	q.Set("color", "fff")
	q.Set("size", "128")
	return avatarService + "?" + q.Encode()
}
