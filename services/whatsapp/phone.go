package whatsapp

import "strings"

const (
	chatSuffix    = "@c.us"
	countryCode   = "972"
	mobilePrefix  = "05"
	localPhoneLen = 10
)

// ChatIDFromLocal converts "05XXXXXXXX" into "9725XXXXXXXX@c.us".
// Anything that is not an Israeli mobile number yields "".
func ChatIDFromLocal(phone string) string {
	phone = normalizeDigits(phone)
	if len(phone) != localPhoneLen || !strings.HasPrefix(phone, mobilePrefix) {
		return ""
	}
	return countryCode + phone[1:] + chatSuffix
}

// LocalFromChatID converts "9725XXXXXXXX@c.us" back into "05XXXXXXXX".
func LocalFromChatID(chatID string) string {
	at := strings.Index(chatID, chatSuffix)
	if at < 0 || !strings.HasPrefix(chatID, countryCode) {
		return ""
	}
	digits := chatID[len(countryCode):at]
	if digits == "" || !isDigits(digits) {
		return ""
	}
	return "0" + digits
}

// IsLocalMobile reports whether phone looks like "05XXXXXXXX" once separators are removed.
func IsLocalMobile(phone string) bool {
	return ChatIDFromLocal(phone) != ""
}

// normalizeDigits drops the separators people type into phone fields.
func normalizeDigits(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("-", "", " ", "", "(", "", ")", "").Replace(s)
	if !isDigits(s) {
		return ""
	}
	return s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
