package helper

import "strconv"

// DecimalText renders a float as its shortest exact decimal form, for
// storage in numeric columns. Going through text keeps values like 12.5
// byte-stable across write and read instead of drifting through float
// re-encoding.
func DecimalText(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DecimalValue parses a numeric column's textual value back into a float.
// Empty text yields nil.
func DecimalValue(s *string) *float64 {
	if s == nil || *s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(*s, 64)
	if err != nil {
		return nil
	}
	return &f
}
