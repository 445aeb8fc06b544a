package sitepdf

import (
	"strconv"
	"strings"
)

// paperSizes maps paper format names to width and height in inches.
var paperSizes = map[string][2]float64{
	"letter":  {8.5, 11},
	"legal":   {8.5, 14},
	"tabloid": {11, 17},
	"ledger":  {17, 11},
	"a0":      {33.1, 46.8},
	"a1":      {23.4, 33.1},
	"a2":      {16.54, 23.4},
	"a3":      {11.7, 16.54},
	"a4":      {8.27, 11.7},
	"a5":      {5.83, 8.27},
	"a6":      {4.13, 5.83},
}

// unitsPerInch converts CSS length units to inches.
var unitsPerInch = map[string]float64{
	"px": 96,
	"in": 1,
	"cm": 2.54,
	"mm": 25.4,
}

// PaperSize returns the width and height in inches of a paper format.
// Names are case insensitive; empty means A4.
func PaperSize(format string) (width, height float64, err error) {
	if strings.TrimSpace(format) == "" {
		format = DefaultPaperFormat
	}
	size, ok := paperSizes[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return 0, 0, Errorf(EINVALID, "unknown paper format %q", format)
	}
	return size[0], size[1], nil
}

// ParseLength converts a CSS length such as "20px", "1cm" or "0.5in" to
// inches. A bare number is read as pixels.
func ParseLength(raw string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	unit := "px"
	for u := range unitsPerInch {
		if strings.HasSuffix(s, u) {
			unit = u
			s = strings.TrimSpace(strings.TrimSuffix(s, u))
			break
		}
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || n < 0 {
		return 0, Errorf(EINVALID, "invalid length %q", raw)
	}
	return n / unitsPerInch[unit], nil
}

// Validate checks the paper format and every non-empty margin.
func (o PrintOptions) Validate() error {
	if _, _, err := PaperSize(o.Format); err != nil {
		return err
	}
	for _, m := range []struct{ side, value string }{
		{"top", o.Margins.Top},
		{"right", o.Margins.Right},
		{"bottom", o.Margins.Bottom},
		{"left", o.Margins.Left},
	} {
		if strings.TrimSpace(m.value) == "" {
			continue
		}
		if _, err := ParseLength(m.value); err != nil {
			return Errorf(EINVALID, "%s margin: invalid length %q", m.side, m.value)
		}
	}
	return nil
}
