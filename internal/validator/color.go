package validator

import (
	"regexp"
	"strings"
)

var (
	hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

	num       = `\s*-?(?:\d+|\d*\.\d+)%?\s*`
	rgbColor  = regexp.MustCompile(`^rgb\(` + num + `,` + num + `,` + num + `\)$`)
	rgbaColor = regexp.MustCompile(`^rgba\(` + num + `,` + num + `,` + num + `,` + num + `\)$`)
	hslColor  = regexp.MustCompile(`^hsl\(` + num + `,` + num + `,` + num + `\)$`)
	hslaColor = regexp.MustCompile(`^hsla\(` + num + `,` + num + `,` + num + `,` + num + `\)$`)
)

var namedColors = map[string]struct{}{
	"black": {}, "white": {}, "red": {}, "green": {}, "blue": {}, "yellow": {},
	"orange": {}, "purple": {}, "pink": {}, "gray": {}, "grey": {}, "brown": {},
	"cyan": {}, "magenta": {}, "lime": {}, "navy": {}, "teal": {}, "silver": {},
	"gold": {}, "maroon": {}, "olive": {}, "aqua": {}, "fuchsia": {}, "coral": {},
	"salmon": {}, "violet": {}, "indigo": {}, "turquoise": {}, "tan": {}, "beige": {},
	"ivory": {}, "lavender": {}, "transparent": {}, "currentcolor": {}, "inherit": {},
}

// IsSafeColor reports whether s belongs to the CSS color subset allowed in
// inline styles: blank, #RGB/#RRGGBB, a fixed named-color list, or
// rgb()/rgba()/hsl()/hsla() with numeric arguments.
func IsSafeColor(s string) bool {
	v := strings.TrimSpace(s)
	if v == "" {
		return true
	}
	lower := strings.ToLower(v)
	if _, ok := namedColors[lower]; ok {
		return true
	}
	switch {
	case hexColor.MatchString(v):
		return true
	case rgbColor.MatchString(lower), rgbaColor.MatchString(lower):
		return true
	case hslColor.MatchString(lower), hslaColor.MatchString(lower):
		return true
	}
	return false
}
