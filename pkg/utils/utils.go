// Package utils holds small presentation helpers shared by the demo
// renderer: color-name lookup tables and string truncation. No table
// rendering or YAML marshaling lives here, since there's no tabular
// inspect output to format in a chat client.
package utils

import (
	"strings"

	"github.com/fatih/color"
	"github.com/jesseduffield/gocui"
)

// GetGocuiAttribute resolves a config color name (e.g. "green", "bold")
// into the gocui.Attribute used for view frame/selection colors.
func GetGocuiAttribute(key string) gocui.Attribute {
	colorMap := map[string]gocui.Attribute{
		"default":   gocui.ColorDefault,
		"black":     gocui.ColorBlack,
		"red":       gocui.ColorRed,
		"green":     gocui.ColorGreen,
		"yellow":    gocui.ColorYellow,
		"blue":      gocui.ColorBlue,
		"magenta":   gocui.ColorMagenta,
		"cyan":      gocui.ColorCyan,
		"white":     gocui.ColorWhite,
		"bold":      gocui.AttrBold,
		"reverse":   gocui.AttrReverse,
		"underline": gocui.AttrUnderline,
	}
	if value, ok := colorMap[key]; ok {
		return value
	}
	return gocui.ColorDefault
}

// GetColorAttribute resolves a config color name into the fatih/color
// attribute used to paint a line's semantic color tags, not literal ANSI
// codes.
func GetColorAttribute(key string) color.Attribute {
	colorMap := map[string]color.Attribute{
		"default":   color.FgWhite,
		"black":     color.FgBlack,
		"red":       color.FgRed,
		"green":     color.FgGreen,
		"yellow":    color.FgYellow,
		"blue":      color.FgBlue,
		"magenta":   color.FgMagenta,
		"cyan":      color.FgCyan,
		"white":     color.FgWhite,
		"bold":      color.Bold,
		"underline": color.Underline,
	}
	if value, ok := colorMap[key]; ok {
		return value
	}
	return color.FgWhite
}

// ColoredString wraps str in the ANSI codes for colorAttribute.
func ColoredString(str string, colorAttribute color.Attribute) string {
	return color.New(colorAttribute).SprintFunc()(str)
}

// SafeTruncate truncates str to at most limit bytes.
func SafeTruncate(str string, limit int) string {
	if len(str) > limit {
		return str[:limit]
	}
	return str
}

// NormalizeLinefeeds replaces each \r\n pair with \n so \r\n-style line
// endings from pasted or piped input collapse to plain \n before reaching
// the input editor; a lone \r is kept.
func NormalizeLinefeeds(str string) string {
	return strings.ReplaceAll(str, "\r\n", "\n")
}
