package config

import (
	"strings"

	"github.com/jesseduffield/gocui"
)

// KeyByLabel maps a config-file key label (lowercase, e.g. "<c-c>") to the
// gocui key constant it represents. Single-rune labels (a letter, digit or
// symbol) are valid keybinding values too but aren't listed here since they
// pass through to gocui as runes rather than named keys.
var KeyByLabel = map[string]gocui.Key{
	"<esc>":       gocui.KeyEsc,
	"<enter>":     gocui.KeyEnter,
	"<tab>":       gocui.KeyTab,
	"<backtab>":   gocui.KeyBacktab,
	"<f1>":        gocui.KeyF1,
	"<f2>":        gocui.KeyF2,
	"<f3>":        gocui.KeyF3,
	"<f4>":        gocui.KeyF4,
	"<f5>":        gocui.KeyF5,
	"<f6>":        gocui.KeyF6,
	"<f7>":        gocui.KeyF7,
	"<f8>":        gocui.KeyF8,
	"<f9>":        gocui.KeyF9,
	"<f10>":       gocui.KeyF10,
	"<f11>":       gocui.KeyF11,
	"<f12>":       gocui.KeyF12,
	"<pgup>":      gocui.KeyPgup,
	"<pgdown>":    gocui.KeyPgdn,
	"<up>":        gocui.KeyArrowUp,
	"<down>":      gocui.KeyArrowDown,
	"<left>":      gocui.KeyArrowLeft,
	"<right>":     gocui.KeyArrowRight,
	"<home>":      gocui.KeyHome,
	"<end>":       gocui.KeyEnd,
	"<delete>":    gocui.KeyDelete,
	"<backspace>": gocui.KeyBackspace,
	"<insert>":    gocui.KeyInsert,

	// Ctrl-H and Ctrl-I alias the backspace/tab key codes, so they're
	// reached through those labels above rather than listed separately.
	"<c-a>": gocui.KeyCtrlA,
	"<c-b>": gocui.KeyCtrlB,
	"<c-c>": gocui.KeyCtrlC,
	"<c-d>": gocui.KeyCtrlD,
	"<c-e>": gocui.KeyCtrlE,
	"<c-f>": gocui.KeyCtrlF,
	"<c-g>": gocui.KeyCtrlG,
	"<c-j>": gocui.KeyCtrlJ,
	"<c-k>": gocui.KeyCtrlK,
	"<c-l>": gocui.KeyCtrlL,
	"<c-n>": gocui.KeyCtrlN,
	"<c-o>": gocui.KeyCtrlO,
	"<c-p>": gocui.KeyCtrlP,
	"<c-q>": gocui.KeyCtrlQ,
	"<c-r>": gocui.KeyCtrlR,
	"<c-s>": gocui.KeyCtrlS,
	"<c-t>": gocui.KeyCtrlT,
	"<c-u>": gocui.KeyCtrlU,
	"<c-v>": gocui.KeyCtrlV,
	"<c-w>": gocui.KeyCtrlW,
	"<c-x>": gocui.KeyCtrlX,
	"<c-y>": gocui.KeyCtrlY,
	"<c-z>": gocui.KeyCtrlZ,
}

// LabelByKey is the inverse of KeyByLabel, used to render a bound key back
// into config-file form (keybindings.LabelFromKey).
var LabelByKey = func() map[gocui.Key]string {
	m := make(map[gocui.Key]string, len(KeyByLabel))
	for label, key := range KeyByLabel {
		m[key] = label
	}
	return m
}()

// IsValidKeybindingKey reports whether key is usable as a keybinding value:
// either a single rune (passed through to gocui as-is) or one of the named
// keys in KeyByLabel, case-insensitively, or the literal "<disabled>".
func IsValidKeybindingKey(key string) bool {
	if len([]rune(key)) == 1 {
		return true
	}
	lower := strings.ToLower(key)
	if lower == "<disabled>" {
		return true
	}
	_, ok := KeyByLabel[lower]
	return ok
}
