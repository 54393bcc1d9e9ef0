package chat

import "unicode/utf8"

// Len counts runes, which is how surfaces measure decoration fields.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}

// Left returns at most the first n runes of s.
func Left(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Split divides already-translated text into a prefix and a suffix of at most
// limit runes each. Text that fits is returned whole as the prefix. When the
// cut lands right after a ColorChar the escape moves to the suffix, and the
// suffix is led by the formatting active at the end of the prefix so the second
// half keeps its style. Anything beyond 2*limit (less the carried codes) is lost.
func Split(text string, limit int) (prefix, suffix string) {
	r := []rune(text)
	if len(r) <= limit {
		return text, ""
	}

	head := r[:limit]
	var carry string
	if len(head) > 0 && head[len(head)-1] == ColorChar {
		head = head[:len(head)-1]
		carry = string(ColorChar)
	}

	prefix = string(head)
	suffix = Left(LastColors(prefix)+carry+string(r[limit:]), limit)
	return prefix, suffix
}
