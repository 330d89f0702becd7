package img2term

import (
	"fmt"
	"strings"
)

const (
	ESC = "\u001b"

	// HalfBlock is U+2580, the upper half block. Foreground paints the
	// top pixel of a cell, background the bottom.
	HalfBlock = '▀'

	ansiReset = ESC + "[0m"
)

// fgEscapes maps a 16-entry palette index to its foreground escape.
// Indices 0-7 are the normal SGR colors, 8-15 the bold variants.
var fgEscapes = [16]string{
	ESC + "[0;30m",
	ESC + "[0;31m",
	ESC + "[0;32m",
	ESC + "[0;33m",
	ESC + "[0;34m",
	ESC + "[0;35m",
	ESC + "[0;36m",
	ESC + "[0;37m",
	ESC + "[1;30m",
	ESC + "[1;31m",
	ESC + "[1;32m",
	ESC + "[1;33m",
	ESC + "[1;34m",
	ESC + "[1;35m",
	ESC + "[1;36m",
	ESC + "[1;37m",
}

// bgEscapes maps a background palette index to its escape. Background
// SGR codes only exist for the 8 normal colors.
var bgEscapes = [8]string{
	ESC + "[40m",
	ESC + "[41m",
	ESC + "[42m",
	ESC + "[43m",
	ESC + "[44m",
	ESC + "[45m",
	ESC + "[46m",
	ESC + "[47m",
}

// truecolorFg returns the 24-bit foreground escape carrying the literal
// channel values of c.
func truecolorFg(c RGB) string {
	return fmt.Sprintf("%s[38;2;%d;%d;%dm", ESC, c.R, c.G, c.B)
}

// truecolorBg returns the 24-bit background escape for c.
func truecolorBg(c RGB) string {
	return fmt.Sprintf("%s[48;2;%d;%d;%dm", ESC, c.R, c.G, c.B)
}

// ansi256Fg returns the 256-color foreground escape for palette index n.
func ansi256Fg(n int) string {
	return fmt.Sprintf("%s[38;5;%dm", ESC, n)
}

// ansi256Bg returns the 256-color background escape for palette index n.
func ansi256Bg(n int) string {
	return fmt.Sprintf("%s[48;5;%dm", ESC, n)
}

// CompressANSI compresses an ANSI image by dropping escapes that do not
// change the active attributes: runs of cells sharing foreground and
// background colors keep a single leading escape. The result renders
// identically to the input.
func CompressANSI(ansiImage string) string {
	var compressed strings.Builder

	lines := strings.Split(ansiImage, "\n")
	for _, line := range lines {
		if line == "" {
			continue
		}
		// Attributes announced by escapes since the last glyph, and
		// the attributes the terminal is currently displaying.
		var pendFg, pendBg string
		var lastFg, lastBg string

		segments := strings.Split(line, ESC+"[")
		for _, segment := range segments {
			if segment == "" {
				continue
			}
			parts := strings.SplitN(segment, "m", 2)
			if len(parts) != 2 {
				compressed.WriteString(segment)
				continue
			}
			colorCode, block := parts[0], parts[1]
			if colorCode == "0" {
				pendFg, pendBg = "", ""
				lastFg, lastBg = "", ""
			} else {
				fg, bg := extractColors(colorCode)
				if fg != "" {
					pendFg = fg
				}
				if bg != "" {
					pendBg = bg
				}
			}
			if block == "" {
				continue
			}

			if pendFg != lastFg || pendBg != lastBg {
				var changedFg, changedBg string
				if pendFg != lastFg {
					changedFg = pendFg
				}
				if pendBg != lastBg {
					changedBg = pendBg
				}
				compressed.WriteString(formatANSICode(changedFg, changedBg))
				lastFg, lastBg = pendFg, pendBg
			}
			compressed.WriteString(block)
		}
		compressed.WriteString(ansiReset)
		compressed.WriteByte('\n')
	}

	return compressed.String()
}

// formatANSICode formats a single escape carrying the given foreground
// and background codes, joined with a semicolon when both are present.
func formatANSICode(fg, bg string) string {
	var code strings.Builder
	code.WriteString(ESC)
	code.WriteByte('[')
	if fg != "" {
		code.WriteString(fg)
		if bg != "" {
			code.WriteByte(';')
		}
	}
	if bg != "" {
		code.WriteString(bg)
	}
	code.WriteByte('m')
	return code.String()
}

// extractColors splits an SGR parameter list into its foreground and
// background components. Recognized forms: "0;3N"/"1;3N" foreground,
// "4N" background, "38;5;N"/"48;5;N" indexed, "38;2;R;G;B"/"48;2;R;G;B"
// direct color.
func extractColors(colorCodes string) (fg string, bg string) {
	colors := strings.Split(colorCodes, ";")
	for i := 0; i < len(colors); i++ {
		switch {
		case (colors[i] == "38" || colors[i] == "48") &&
			i+4 < len(colors) && colors[i+1] == "2":
			code := strings.Join(colors[i:i+5], ";")
			if colors[i] == "38" {
				fg = code
			} else {
				bg = code
			}
			i += 4
		case (colors[i] == "38" || colors[i] == "48") &&
			i+2 < len(colors) && colors[i+1] == "5":
			code := strings.Join(colors[i:i+3], ";")
			if colors[i] == "38" {
				fg = code
			} else {
				bg = code
			}
			i += 2
		case (colors[i] == "0" || colors[i] == "1") &&
			i+1 < len(colors) && strings.HasPrefix(colors[i+1], "3"):
			fg = colors[i] + ";" + colors[i+1]
			i++
		case strings.HasPrefix(colors[i], "4"):
			bg = colors[i]
		}
	}
	return fg, bg
}
