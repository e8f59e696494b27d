package helper

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"basic", "Blue Dream", 0, "blue-dream"},
		{"trims and lowercases", "  OG Kush  ", 0, "og-kush"},
		{"diacritics", "Crème Brûlée #3", 0, "creme-brulee-3"},
		{"punctuation collapses", "Girl--Scout...Cookies!!", 0, "girl-scout-cookies"},
		{"leading and trailing junk", "---Zkittlez---", 0, "zkittlez"},
		{"empty falls back", "   ", 0, "item"},
		{"symbols only falls back", "???", 0, "item"},
		{"max length enforced", "northern lights", 8, "northern"},
		{"max length trims dangling hyphen", "ab cdefg", 3, "ab"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in, tc.max))
		})
	}
}

func TestGenerateSlug(t *testing.T) {
	assert.Equal(t, "durban-poison", GenerateSlug("Durban Poison"))
}

func TestSlugWithTimeSuffix(t *testing.T) {
	got := SlugWithTimeSuffix("og-kush")
	assert.Regexp(t, regexp.MustCompile(`^og-kush-\d{4}$`), got)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
	assert.True(t, IsUniqueViolation(errors.New(`ERROR: duplicate key value violates unique constraint "idx_genetics_slug" (SQLSTATE 23505)`)))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: genetics.genetic_slug")))
}
