// termchat-demo is a minimal terminal front end for termchat-core: it
// wires the buffer store, window tree, input editor and hook registry
// into a gocui screen.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/integrii/flaggy"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/jesseduffield/gocui"

	"github.com/termchat/termchat-core/internal/bufstore"
	"github.com/termchat/termchat-core/internal/engine"
	"github.com/termchat/termchat-core/internal/hook"
	"github.com/termchat/termchat-core/internal/inputline"
	"github.com/termchat/termchat-core/internal/layout"
	"github.com/termchat/termchat-core/internal/refresh"
	"github.com/termchat/termchat-core/internal/term"
	"github.com/termchat/termchat-core/internal/wintree"
	"github.com/termchat/termchat-core/pkg/config"
	"github.com/termchat/termchat-core/pkg/log"
	"github.com/termchat/termchat-core/pkg/utils"
)

const defaultVersion = "unversioned"

var (
	commit      string
	version     = defaultVersion
	date        string
	buildSource = "unknown"

	configFlag    = false
	debuggingFlag = false
	configDirFlag = ""
)

func main() {
	updateBuildInfo()

	flaggy.SetName("termchat-demo")
	flaggy.SetDescription("A terminal multi-buffer chat client core, driven by a gocui front end")
	flaggy.Bool(&configFlag, "c", "config", "Print the current default config")
	flaggy.Bool(&debuggingFlag, "d", "debug", "a boolean")
	flaggy.String(&configDirFlag, "", "config-dir", "Directory holding config.yml and development.log")
	flaggy.SetVersion(version)
	flaggy.Parse()

	if configFlag {
		var buf bytes.Buffer
		if err := yaml.NewEncoder(&buf).Encode(config.GetDefaultConfig()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Print(buf.String())
		os.Exit(0)
	}

	if configDirFlag == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = "."
		}
		configDirFlag = dir + "/termchat"
	}

	appConfig, err := config.NewAppConfig("termchat", version, commit, date, buildSource, debuggingFlag, configDirFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := log.NewLogger(appConfig, "")

	if err := run(appConfig); err != nil {
		logger.Error(err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run builds the core stack and drives it through a gocui screen until
// the user quits. gocui owns the OS event pump; the engine's own
// scheduler is driven by a ticker that hands each Tick to gocui's Update
// queue rather than running its own goroutine loop, so Tick always runs
// on the single event-loop goroutine instead of racing panel state.
func run(appConfig *config.AppConfig) error {
	hooks := hook.New()
	buffers := bufstore.New(hooks)
	buffers.MaxBuffers = appConfig.UserConfig.Engine.MaxBuffers
	buffers.AutoRenumber = appConfig.UserConfig.Engine.AutoRenumber
	if appConfig.UserConfig.Engine.PositionPolicy == "first_gap" {
		buffers.Position = bufstore.PositionFirstGap
	}

	layoutPath := filepath.Join(appConfig.ConfigDir, "layout.toml")
	savedLayout, err := layout.Load(layoutPath)
	if err != nil {
		return err
	}

	coreOpts := bufstore.BufferOptions{
		PluginOwner: "core",
		Name:        "weechat",
		ShortName:   "core",
		Kind:        bufstore.Formatted,
	}
	if n, ok := savedLayout.NumberFor("core.weechat"); ok {
		coreOpts.LayoutNumber = n
	}
	core, err := buffers.NewBuffer(coreOpts)
	if err != nil {
		return err
	}

	windows := wintree.New(core.ID, 80, 24)
	layout.ApplyWindowHints(savedLayout, windows)

	clip := &inputline.Clipboard{}
	input := inputline.New(clip, appConfig.UserConfig.Engine.PasteThresholdBytes)
	input.SetUndoCap(appConfig.UserConfig.Engine.UndoMax)

	e := engine.New(buffers, windows, hooks)
	defer e.Stop()

	g, err := gocui.NewGui(gocui.OutputTrue, false, gocui.NORMAL, false, map[rune]string{})
	if err != nil {
		return err
	}
	defer g.Close()

	g.Mouse = !appConfig.UserConfig.Gui.IgnoreMouseEvents

	renderer := term.NewRenderer(g, e, buffers, windows, input)
	renderer.ShowNicklist = appConfig.UserConfig.Gui.ShowNicklist
	renderer.OnSubmit = func(text string) bool {
		// A real front end would dispatch through the hook registry's
		// command hooks; the demo just echoes into the current buffer.
		if cur := windows.Current(); cur != nil {
			if buf, ok := buffers.ByID(cur.BufferID); ok {
				buf.Lines.Append(&bufstore.Line{Message: text, Timestamp: time.Now().Unix(), Displayed: true})
				cur.Refresh.Ask(refresh.Full)
			}
		}
		return true
	}
	renderer.OnHistoryAdd = func(string) {}

	g.SetManager(gocui.ManagerFunc(renderer.Layout))

	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, func(*gocui.Gui, *gocui.View) error {
		return gocui.ErrQuit
	}); err != nil {
		return err
	}
	if err := renderer.BindUniversal(g, appConfig.UserConfig.Keybinding.Universal); err != nil {
		return err
	}

	goEvery(g, appConfig.UserConfig.Engine.IdlePoll, func() {
		e.Tick(time.Now())
		if e.Quitting() {
			g.Update(func(*gocui.Gui) error { return gocui.ErrQuit })
		}
	})

	runErr := g.MainLoop()

	if err := layout.Save(layoutPath, layout.BuildFromState(buffers, windows)); err != nil {
		return err
	}

	if runErr != nil && runErr != gocui.ErrQuit {
		return runErr
	}
	return nil
}

// goEvery spawns a background ticker that hands f to g.Update on every
// tick: background work never touches view or core state directly, it
// only ever runs on the single gocui event-loop goroutine.
func goEvery(g *gocui.Gui, interval time.Duration, f func()) {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			g.Update(func(*gocui.Gui) error {
				f()
				return nil
			})
		}
	}()
}

func updateBuildInfo() {
	if version != defaultVersion {
		return
	}
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if revision, ok := lo.Find(buildInfo.Settings, func(s debug.BuildSetting) bool {
		return s.Key == "vcs.revision"
	}); ok {
		commit = revision.Value
		version = utils.SafeTruncate(revision.Value, 7)
	}
	if t, ok := lo.Find(buildInfo.Settings, func(s debug.BuildSetting) bool {
		return s.Key == "vcs.time"
	}); ok {
		date = t.Value
	}
}
