// Package strutil provides byte-safe, codepoint-aware string helpers used
// throughout the engine: cursor math for the input editor, word-boundary
// classification for word-wise editing, and glob/regex helpers for the
// highlight and search engines.
package strutil

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// WordClass categorises a rune for word-wise cursor motion.
type WordClass int

const (
	ClassWhitespace WordClass = iota
	ClassWord
	ClassPunct
)

// nickAlphabet is the extra set of punctuation WeeChat treats as part of a
// nickname/word for input editing purposes (gui-input.c: gui_input_is_word_char).
const nickAlphabet = "_-[]\\`^{}|"

// CodepointLen returns the number of UTF-8 codepoints in s.
func CodepointLen(s string) int {
	return utf8.RuneCountInString(s)
}

// ByteOffsetOfCodepoint returns the byte offset of the n-th codepoint (0-based)
// in s. If n >= CodepointLen(s), len(s) is returned.
func ByteOffsetOfCodepoint(s string, n int) int {
	if n <= 0 {
		return 0
	}
	i := 0
	for offset := range s {
		if i == n {
			return offset
		}
		i++
	}
	return len(s)
}

// CodepointOfByte returns the codepoint index that byte offset k falls within.
func CodepointOfByte(s string, k int) int {
	if k <= 0 {
		return 0
	}
	i := 0
	for offset := range s {
		if offset >= k {
			return i
		}
		i++
	}
	return i
}

// CharSize returns the byte length of the UTF-8 sequence starting at p.
func CharSize(p string) int {
	if p == "" {
		return 0
	}
	_, size := utf8.DecodeRuneInString(p)
	return size
}

// NextChar returns the substring of p after the first codepoint.
func NextChar(p string) string {
	size := CharSize(p)
	if size == 0 {
		return p
	}
	return p[size:]
}

// PrevChar returns the byte offset, within s, of the codepoint preceding the
// one starting at byte offset p.
func PrevChar(s string, p int) int {
	if p <= 0 || p > len(s) {
		return 0
	}
	prefix := s[:p]
	r, size := utf8.DecodeLastRuneInString(prefix)
	if r == utf8.RuneError && size == 0 {
		return 0
	}
	return p - size
}

// ClassifyWordChar classifies a rune for cursor-motion purposes.
func ClassifyWordChar(r rune) WordClass {
	switch {
	case unicode.IsSpace(r):
		return ClassWhitespace
	case unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(nickAlphabet, r):
		return ClassWord
	default:
		return ClassPunct
	}
}

// IsWordCharInput reports whether r counts as part of a "word" while editing
// input (letters, digits, and the nickname-alphabet punctuation set).
func IsWordCharInput(r rune) bool {
	return ClassifyWordChar(r) == ClassWord
}

// IsWhitespaceChar reports whether r is whitespace per Unicode's definition.
func IsWhitespaceChar(r rune) bool {
	return unicode.IsSpace(r)
}

// DisplayWidth returns the terminal column width of s, accounting for
// double-width and zero-width runes.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// SanitizeUTF8 replaces invalid UTF-8 byte sequences in s with '?', mirroring
// gui_input_insert's normalisation of pasted garbage.
func SanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			b.WriteByte('?')
			i++
			continue
		}
		b.WriteRune(r)
		i += size
	}
	return b.String()
}

// CompiledRegex wraps a compiled regular expression so callers can hold an
// Option-like value and release it deterministically, a destructor-bearing
// value standing in for the classic leaks-if-you-forget-to-free handle.
type CompiledRegex struct {
	re *regexp.Regexp
}

// RegexCompile compiles pattern with POSIX-ish convenience flags. icase makes
// the match case-insensitive. There is no separate extended flag, since
// Go's regexp is always "extended".
func RegexCompile(pattern string, icase bool) (*CompiledRegex, error) {
	p := pattern
	if icase {
		p = "(?i)" + p
	}
	re, err := regexp.Compile(p)
	if err != nil {
		return nil, err
	}
	return &CompiledRegex{re: re}, nil
}

// MatchString reports whether s matches the compiled pattern.
func (c *CompiledRegex) MatchString(s string) bool {
	if c == nil || c.re == nil {
		return false
	}
	return c.re.MatchString(s)
}

// RegexFree releases the compiled regex. Present for call-site symmetry
// with an explicit free contract; in Go this simply drops the reference.
func (c *CompiledRegex) RegexFree() {
	if c == nil {
		return
	}
	c.re = nil
}

// MatchList implements comma-separated pattern matching with `!`-prefixed
// exclusion and `*` wildcard, as used by the highlight word list and tag
// filters (gui-buffer.c's string_match_list).
func MatchList(text string, patterns []string, caseSensitive bool) bool {
	matched := false
	hay := text
	if !caseSensitive {
		hay = strings.ToLower(hay)
	}
	for _, raw := range patterns {
		pat := strings.TrimSpace(raw)
		if pat == "" {
			continue
		}
		exclude := false
		if strings.HasPrefix(pat, "!") {
			exclude = true
			pat = pat[1:]
		}
		if !caseSensitive {
			pat = strings.ToLower(pat)
		}
		if globMatch(pat, hay) {
			if exclude {
				return false
			}
			matched = true
		}
	}
	return matched
}

// globMatch implements a small '*' wildcard matcher (no '?' support, mirroring
// WeeChat's string_match semantics for highlight lists).
func globMatch(pattern, s string) bool {
	parts := strings.Split(pattern, "*")
	if len(parts) == 1 {
		return pattern == s
	}
	if !strings.HasPrefix(s, parts[0]) {
		return false
	}
	s = s[len(parts[0]):]
	last := len(parts) - 1
	for i := 1; i < last; i++ {
		idx := strings.Index(s, parts[i])
		if idx < 0 {
			return false
		}
		s = s[idx+len(parts[i]):]
	}
	return strings.HasSuffix(s, parts[last]) || parts[last] == ""
}
