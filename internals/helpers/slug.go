package helper

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphen   = regexp.MustCompile(`-+`)
)

// Slugify turns free text into a [a-z0-9-] slug: strips diacritics,
// compresses "-", trims the ends, enforces maxLen (default 100 if <=0),
// falls back to "item" for empty input.
func Slugify(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 100
	}
	s = strings.ToLower(strings.TrimSpace(s))

	// Strip diacritics (é → e)
	var buf []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		buf = append(buf, r)
	}
	s = string(buf)

	s = reNonAlnum.ReplaceAllString(s, "-")
	s = reHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if s == "" {
		s = "item"
	}
	if utf8.RuneCountInString(s) > maxLen {
		rs := []rune(s)
		s = string(rs[:maxLen])
		s = strings.Trim(s, "-")
	}
	if s == "" {
		s = "item"
	}
	return s
}

// GenerateSlug slugifies a name with the default length cap.
func GenerateSlug(name string) string {
	return Slugify(name, 100)
}

// SlugWithTimeSuffix appends a 4-digit suffix taken from the wall clock,
// used to disambiguate a slug that is already taken.
func SlugWithTimeSuffix(base string) string {
	return fmt.Sprintf("%s-%04d", base, time.Now().UnixMilli()%10000)
}

// EnsureUniqueSlug checks (case-insensitively) whether base is free in
// table.column and returns it unchanged if so; otherwise it returns the
// base with a time suffix. scopeFn may add WHERE clauses, e.g. to exclude
// the row being updated.
//
// The result is only a best-effort candidate: the table must still carry a
// unique index, and callers retry with a fresh suffix when the insert hits
// a unique violation.
func EnsureUniqueSlug(
	ctx context.Context,
	db *gorm.DB,
	table string,
	column string,
	base string,
	scopeFn func(*gorm.DB) *gorm.DB,
) (string, error) {
	q := db.WithContext(ctx).Table(table)
	if scopeFn != nil {
		q = scopeFn(q)
	}

	var count int64
	if err := q.Where(fmt.Sprintf("LOWER(%s) = ?", column), strings.ToLower(base)).Count(&count).Error; err != nil {
		return "", err
	}
	if count == 0 {
		return base, nil
	}
	return SlugWithTimeSuffix(base), nil
}

// IsUniqueViolation reports whether err looks like a unique-constraint
// failure from the store.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique") ||
		strings.Contains(msg, "23505")
}
