package htmlmd

import "strings"

// Context-sensitive escaping for serialized text. Escapes the characters
// that could otherwise re-parse as Markdown constructs. All escaped
// characters are single-byte ASCII, so byte indexing below always lands on
// UTF-8 boundaries.

// escapePhrasing escapes Markdown syntax characters in inline text.
// `]` is intentionally not escaped here: a standalone `]` without a
// preceding `[` is harmless, and escaping it would corrupt task-list
// checkbox output.
func escapePhrasing(s string) string {
	return escapeText(s, false)
}

// escapeLinkText escapes like escapePhrasing and additionally escapes `]`,
// which would prematurely close a link's or image's bracket.
func escapeLinkText(s string) string {
	return escapeText(s, true)
}

func escapeText(s string, bracketClose bool) string {
	if !strings.ContainsAny(s, "\\[]_*`~<!&") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	last := 0
	for i := 0; i < len(s); i++ {
		escape := false
		switch s[i] {
		case '\\', '[', '_', '*', '`', '<':
			escape = true
		case ']':
			escape = bracketClose
		case '~':
			// Only a double tilde triggers strikethrough.
			escape = i+1 < len(s) && s[i+1] == '~'
		case '!':
			// Only needs escaping before `[` (potential image).
			escape = i+1 < len(s) && s[i+1] == '['
		case '&':
			// Only before `#` or a letter (potential character reference).
			if i+1 < len(s) {
				c := s[i+1]
				escape = c == '#' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
			}
		}
		if escape {
			b.WriteString(s[last:i])
			b.WriteByte('\\')
			last = i
		}
	}
	b.WriteString(s[last:])
	return b.String()
}

// escapeAtBreakStart escapes the first character of text emitted at the
// start of a block line, where it could open a block construct (heading,
// blockquote, list marker, thematic break, setext underline, fence).
func escapeAtBreakStart(s string) string {
	if s == "" {
		return s
	}

	first := s[0]
	var second byte
	hasSecond := len(s) > 1
	if hasSecond {
		second = s[1]
	}

	needsEscape := false
	switch first {
	case '#', '>':
		needsEscape = true
	case '*':
		needsEscape = !hasSecond || second == ' ' || second == '\t' || second == '\r' || second == '\n' || second == '*'
	case '+':
		needsEscape = !hasSecond || second == ' ' || second == '\t' || second == '\r' || second == '\n'
	case '-':
		needsEscape = !hasSecond || second == ' ' || second == '\t' || second == '\r' || second == '\n' || second == '-'
	case '=':
		needsEscape = !hasSecond || second == ' ' || second == '\t'
	case '_':
		needsEscape = hasSecond && second == '_'
	case '`':
		needsEscape = hasSecond && second == '`'
	case '~':
		needsEscape = hasSecond && second == '~'
	case '<':
		needsEscape = hasSecond && (second == '!' || second == '/' || second == '?' ||
			(second >= 'A' && second <= 'Z') || (second >= 'a' && second <= 'z'))
	}
	if needsEscape {
		return "\\" + s
	}

	// Ordered list marker: digits followed by `.` or `)` and whitespace
	// (or end of text). Escape by inserting `\` before the delimiter.
	if first >= '0' && first <= '9' {
		j := 1
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		if j < len(s) && (s[j] == '.' || s[j] == ')') {
			if j+1 == len(s) || s[j+1] == ' ' || s[j+1] == '\t' || s[j+1] == '\r' || s[j+1] == '\n' {
				return s[:j] + "\\" + s[j:]
			}
		}
	}

	return s
}
