package settings

import (
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor accepts the CSS color forms a terminal can show: named
// colors, #rgb / #rrggbb hex, rgb()/rgba() and hsl()/hsla(). Alpha is
// accepted and ignored.
func ParseColor(input string) (colorful.Color, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return colorful.Color{}, ErrNotColor
	}

	if hex, ok := namedColors[s]; ok {
		return colorful.Hex(hex)
	}
	if strings.HasPrefix(s, "#") {
		if strings.Trim(s[1:], "0123456789abcdef") != "" {
			return colorful.Color{}, ErrNotColor
		}
		switch len(s) {
		case 4, 7:
			c, err := colorful.Hex(s)
			if err != nil {
				return colorful.Color{}, ErrNotColor
			}
			return c, nil
		case 5, 9:
			// #rgba / #rrggbbaa: drop the alpha digits.
			c, err := colorful.Hex(s[:len(s)-(len(s)-1)/4])
			if err != nil {
				return colorful.Color{}, ErrNotColor
			}
			return c, nil
		}
		return colorful.Color{}, ErrNotColor
	}

	name, args, ok := splitFunc(s)
	if !ok {
		return colorful.Color{}, ErrNotColor
	}
	switch name {
	case "rgb", "rgba":
		return parseRGB(args)
	case "hsl", "hsla":
		return parseHSL(args)
	}
	return colorful.Color{}, ErrNotColor
}

// Hex returns input as #rrggbb, or fallback when it does not parse.
func Hex(input, fallback string) string {
	c, err := ParseColor(input)
	if err != nil {
		return fallback
	}
	return c.Hex()
}

func splitFunc(s string) (string, []string, bool) {
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return "", nil, false
	}
	name := strings.TrimSpace(s[:open])
	body := s[open+1 : len(s)-1]

	// Both the legacy comma syntax and the space/slash syntax.
	body = strings.ReplaceAll(body, "/", " ")
	body = strings.ReplaceAll(body, ",", " ")
	args := strings.Fields(body)
	if len(args) != 3 && len(args) != 4 {
		return "", nil, false
	}
	if len(args) == 4 {
		if _, err := parseAlpha(args[3]); err != nil {
			return "", nil, false
		}
	}
	return name, args[:3], true
}

func parseRGB(args []string) (colorful.Color, error) {
	var ch [3]float64
	for i, a := range args {
		if strings.HasSuffix(a, "%") {
			v, err := parseFinite(strings.TrimSuffix(a, "%"))
			if err != nil || v < 0 || v > 100 {
				return colorful.Color{}, ErrNotColor
			}
			ch[i] = v / 100
			continue
		}
		v, err := parseFinite(a)
		if err != nil || v < 0 || v > 255 {
			return colorful.Color{}, ErrNotColor
		}
		ch[i] = v / 255
	}
	return colorful.Color{R: ch[0], G: ch[1], B: ch[2]}, nil
}

func parseHSL(args []string) (colorful.Color, error) {
	h, err := parseFinite(strings.TrimSuffix(args[0], "deg"))
	if err != nil {
		return colorful.Color{}, ErrNotColor
	}
	var sl [2]float64
	for i, a := range args[1:] {
		if !strings.HasSuffix(a, "%") {
			return colorful.Color{}, ErrNotColor
		}
		v, err := parseFinite(strings.TrimSuffix(a, "%"))
		if err != nil || v < 0 || v > 100 {
			return colorful.Color{}, ErrNotColor
		}
		sl[i] = v / 100
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return colorful.Hsl(h, sl[0], sl[1]).Clamped(), nil
}

func parseAlpha(a string) (float64, error) {
	if strings.HasSuffix(a, "%") {
		v, err := parseFinite(strings.TrimSuffix(a, "%"))
		if err != nil || v < 0 || v > 100 {
			return 0, ErrNotColor
		}
		return v / 100, nil
	}
	v, err := parseFinite(a)
	if err != nil || v < 0 || v > 1 {
		return 0, ErrNotColor
	}
	return v, nil
}

// parseFinite parses a float and rejects NaN and infinities.
func parseFinite(a string) (float64, error) {
	v, err := strconv.ParseFloat(a, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotColor
	}
	return v, nil
}
