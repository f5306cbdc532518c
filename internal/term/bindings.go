package term

import (
	"github.com/jesseduffield/gocui"

	"github.com/termchat/termchat-core/pkg/config"
	"github.com/termchat/termchat-core/pkg/gui/keybindings"
)

// BindUniversal registers the global keybindings (quit, window/buffer
// cycling, nicklist toggle) from cfg onto g, turning config label strings
// into gocui bindings via keybindings.GetKey.
func (r *Renderer) BindUniversal(g *gocui.Gui, cfg config.KeybindingUniversalConfig) error {
	bind := func(keyStr string, handler func(*gocui.Gui, *gocui.View) error) error {
		key := keybindings.GetKey(keyStr)
		if key == nil {
			return nil // "<disabled>"
		}
		switch k := key.(type) {
		case rune:
			return g.SetKeybinding("", k, gocui.ModNone, handler)
		case gocui.Key:
			return g.SetKeybinding("", k, gocui.ModNone, handler)
		}
		return nil
	}

	if err := bind(cfg.Quit, func(*gocui.Gui, *gocui.View) error { r.Engine.Quit(); return nil }); err != nil {
		return err
	}
	if err := bind(cfg.QuitAlt, func(*gocui.Gui, *gocui.View) error { r.Engine.Quit(); return nil }); err != nil {
		return err
	}
	if err := bind(cfg.NextWindow, func(*gocui.Gui, *gocui.View) error { r.Windows.SwitchNext(); return nil }); err != nil {
		return err
	}
	if err := bind(cfg.PrevWindow, func(*gocui.Gui, *gocui.View) error { r.Windows.SwitchPrev(); return nil }); err != nil {
		return err
	}
	if err := bind(cfg.NextBuffer, func(*gocui.Gui, *gocui.View) error { r.CycleBuffer(r.Windows.Current(), 1); return nil }); err != nil {
		return err
	}
	if err := bind(cfg.PrevBuffer, func(*gocui.Gui, *gocui.View) error { r.CycleBuffer(r.Windows.Current(), -1); return nil }); err != nil {
		return err
	}
	if err := bind(cfg.ToggleNicklist, func(*gocui.Gui, *gocui.View) error {
		r.ShowNicklist = !r.ShowNicklist
		return nil
	}); err != nil {
		return err
	}
	return nil
}
