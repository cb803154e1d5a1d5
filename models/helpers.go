package models

import "strings"

func trim(s string) string { return strings.TrimSpace(s) }

// NormalizeEmail karşılaştırma ve namespace için e-postayı küçük harfe çevirir.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
