package painter

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"
)

// ResolveColour turns an HTML colour name ("LightGreen", "light grey") or a
// hex code ("#fff", "#4285f4") into an RGBA value.
func ResolveColour(name string) (color.RGBA, error) {
	s := strings.TrimSpace(name)
	if s == "" {
		return color.RGBA{}, fmt.Errorf("empty colour")
	}
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if (len(hex) != 3 && len(hex) != 4 && len(hex) != 6 && len(hex) != 8) || !isHex(hex) {
			return color.RGBA{}, fmt.Errorf("invalid hex colour %q", name)
		}
		c := gg.Hex(hex).Color()
		r, g, b, a := c.RGBA()
		return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}, nil
	}
	key := strings.ToLower(strings.ReplaceAll(s, " ", ""))
	if c, ok := colornames.Map[key]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown colour %q", name)
}

// ColourHex returns the colour as #rrggbb. Unknown colours are passed
// through unchanged so a backend can still hand them to a renderer that
// understands them.
func ColourHex(name string) string {
	c, err := ResolveColour(name)
	if err != nil {
		return name
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
