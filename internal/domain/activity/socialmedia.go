package activity

import "strings"

// socialMediaPatterns maps lowercase identifiers found in app names or window
// titles to platform display names.
var socialMediaPatterns = map[string]string{
	"facebook":  "Facebook",
	"twitter":   "Twitter",
	"x.com":     "X (Twitter)",
	"instagram": "Instagram",
	"linkedin":  "LinkedIn",
	"reddit":    "Reddit",
	"tiktok":    "TikTok",
	"youtube":   "YouTube",
	"snapchat":  "Snapchat",
	"pinterest": "Pinterest",
	"whatsapp":  "WhatsApp",
	"telegram":  "Telegram",
	"discord":   "Discord",
	"twitch":    "Twitch",
}

// IsSocialMedia reports whether the activity looks like social media usage
// based on the app name and window title.
func IsSocialMedia(appName, windowTitle string) bool {
	combined := strings.ToLower(appName) + " " + strings.ToLower(windowTitle)
	for pattern := range socialMediaPatterns {
		if strings.Contains(combined, pattern) {
			return true
		}
	}
	return false
}

// SocialMediaPlatform returns the platform display name, or "" when the
// activity is not social media related.
func SocialMediaPlatform(appName, windowTitle string) string {
	combined := strings.ToLower(appName) + " " + strings.ToLower(windowTitle)
	for pattern, name := range socialMediaPatterns {
		if strings.Contains(combined, pattern) {
			return name
		}
	}
	return ""
}
