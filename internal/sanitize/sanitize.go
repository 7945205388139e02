package sanitize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Идентификаторы записей стора: "rec" + 14 алфанумерик-символов.
var recordIDRe = regexp.MustCompile(`^rec[a-zA-Z0-9]{14}$`)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsValidRecordID(id string) bool {
	return recordIDRe.MatchString(id)
}

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

var validCaseStatuses = map[string]struct{}{
	"New":              {},
	"In Progress":      {},
	"Pending Customer": {},
	"Pending Internal": {},
	"Replied":          {},
	"Resolved":         {},
	"Escalated":        {},
}

func IsValidCaseStatus(status string) bool {
	_, ok := validCaseStatuses[status]
	return ok
}

// CaseStatus возвращает статус, если он входит в whitelist, иначе пустую строку.
// Невалидный статус не ошибка: фильтр просто не применяется.
func CaseStatus(status string) string {
	if IsValidCaseStatus(status) {
		return status
	}
	return ""
}

var validFeedbackStatuses = map[string]struct{}{
	"New":      {},
	"Reviewed": {},
	"Actioned": {},
}

func IsValidFeedbackStatus(status string) bool {
	_, ok := validFeedbackStatuses[status]
	return ok
}

// String обрезает пробелы, ограничивает длину и убирает NUL-байты.
// Лимит байтовый, но рез всегда по границе руны: в стор и в промпты
// не должен уходить битый UTF-8.
func String(value string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = 1000
	}
	s := strings.TrimSpace(value)
	if len(s) > maxLength {
		cut := maxLength
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	return strings.ReplaceAll(s, "\x00", "")
}
