// Package filmography parses actor/actress listing files into a mapping of
// person name to credited film titles.
//
// A listing file starts with free-form header text, followed by a line equal
// to constants.SectionStartLine. After it, a person block looks like:
//
//	Abad, Carmencita	1 2 3 (1955)
//		Abarinding (1954)  <5>
//		Bayanihan (1960)
//
// Lines that fit neither the person nor the credit shape are ignored.
package filmography

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"movielynx/backend/internal/constants"
)

// filmPattern captures the title in front of the last " (<digits>)" group.
// The digit count is deliberately unbounded: "(1955)" and "(19)" both match,
// while "(2016/II)" does not.
var filmPattern = regexp.MustCompile(`^(.*) (\(\d+\))(.*)$`)

// IsSectionStart reports whether line is the exact data-section sentinel
func IsSectionStart(line string) bool {
	return line == constants.SectionStartLine
}

// ExtractPerson returns the normalized person name that line introduces.
// "Last, First (I)\t..." becomes "First (I) Last"; a name without a comma is
// returned as is. Credit continuation lines, lines without a tab and empty
// lines introduce no person.
func ExtractPerson(line string) (string, bool) {
	if line == "" || startsWithSpace(line) {
		return "", false
	}

	tab := strings.IndexByte(line, '\t')
	if tab < 0 {
		return "", false
	}
	return NormalizeName(line[:tab]), true
}

// NormalizeName turns a raw "Last, First" token into "First Last". Only the
// first comma splits; tokens without a comma are returned unchanged.
func NormalizeName(raw string) string {
	last, first, found := strings.Cut(raw, ",")
	if !found {
		return raw
	}
	return strings.TrimSpace(first) + " " + strings.TrimSpace(last)
}

// ExtractFilm returns the film title carried by line, if any. Quoted titles
// are TV series or episodes and are never returned, neither are credits
// without a "(<year>)" annotation.
func ExtractFilm(line string) (string, bool) {
	credit, ok := creditPortion(line)
	if !ok || strings.HasPrefix(credit, `"`) {
		return "", false
	}

	m := filmPattern.FindStringSubmatch(credit)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// creditPortion strips the leading person token, if any, from line
func creditPortion(line string) (string, bool) {
	if line == "" {
		return "", false
	}
	if startsWithSpace(line) {
		return strings.TrimSpace(line), true
	}

	tab := strings.IndexByte(line, '\t')
	if tab < 0 {
		return "", false
	}
	return strings.TrimSpace(line[tab:]), true
}

func startsWithSpace(line string) bool {
	r, _ := utf8.DecodeRuneInString(line)
	return unicode.IsSpace(r)
}
