// Package config handles termchat-core's user-configuration. The fields
// here are all in PascalCase but in your actual config.yml they'll be in
// camelCase. To see the final config after your user-specific options have
// been merged with the defaults, dump `GetDefaultConfig()` merged with your
// file.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// UserConfig holds all of the user-configurable options.
type UserConfig struct {
	// Gui is for configuring visual things: scroll amount, nicklist
	// visibility, colors.
	Gui GuiConfig `yaml:"gui,omitempty"`

	// Engine tunes the core's internal limits: history/undo caps, idle
	// poll interval, paste detection threshold, numbering policy.
	Engine EngineConfig `yaml:"engine,omitempty"`

	// Keybinding maps the demo renderer's actions onto keys.
	Keybinding KeybindingConfig `yaml:"keybinding,omitempty"`

	// Reporting determines whether usage/error events are reported.
	Reporting string `yaml:"reporting,omitempty"`

	// ConfirmOnQuit prompts for confirmation before quitting.
	ConfirmOnQuit bool `yaml:"confirmOnQuit,omitempty"`
}

// ThemeConfig is for setting the colors of panels and bars.
type ThemeConfig struct {
	ActiveBorderColor   []string `yaml:"activeBorderColor,omitempty"`
	InactiveBorderColor []string `yaml:"inactiveBorderColor,omitempty"`
	StatusTextColor     []string `yaml:"statusTextColor,omitempty"`
	HighlightColor      []string `yaml:"highlightColor,omitempty"`
}

// GuiConfig is for configuring visual things like colors and whether we
// show or hide things.
type GuiConfig struct {
	// ScrollHeight determines how many lines you scroll at a time when
	// scrolling a chat window.
	ScrollHeight int `yaml:"scrollHeight,omitempty"`

	// ScrollPastBottom determines whether you can scroll past the bottom
	// of a chat window.
	ScrollPastBottom bool `yaml:"scrollPastBottom,omitempty"`

	// IgnoreMouseEvents is for when you do not want to use your mouse to
	// interact with anything.
	IgnoreMouseEvents bool `yaml:"mouseEvents,omitempty"`

	// ShowNicklist shows the nicklist sidebar by default.
	ShowNicklist bool `yaml:"showNicklist,omitempty"`

	// WrapMainPanel determines whether we use word wrap on chat windows.
	WrapMainPanel bool `yaml:"wrapMainPanel,omitempty"`

	// Theme determines what colors your panel borders and bars have.
	Theme ThemeConfig `yaml:"theme,omitempty"`
}

// EngineConfig tunes the core engine's internal limits and defaults.
type EngineConfig struct {
	// HistoryMax is the per-buffer input history ring capacity.
	HistoryMax int `yaml:"historyMax,omitempty"`

	// UndoMax is the per-input-line undo ring capacity.
	UndoMax int `yaml:"undoMax,omitempty"`

	// PasteThresholdBytes is the byte count above which pasted text is
	// buffered as a single pending paste rather than replayed keystroke
	// by keystroke.
	PasteThresholdBytes int `yaml:"pasteThresholdBytes,omitempty"`

	// IdlePoll is how long the main loop may block waiting for wake-ups
	// when nothing is dirty.
	IdlePoll time.Duration `yaml:"idlePoll,omitempty"`

	// AutoRenumber controls whether closing/merging a buffer shifts
	// higher numbers down to fill the gap.
	AutoRenumber bool `yaml:"autoRenumber,omitempty"`

	// PositionPolicy is one of "end", "first_gap".
	PositionPolicy string `yaml:"positionPolicy,omitempty"`

	// MaxBuffers caps the buffer store.
	MaxBuffers int `yaml:"maxBuffers,omitempty"`
}

// GetDefaultConfig returns the application default configuration. NOTE (to
// contributors, not users): do not default a boolean to true, because false
// is the boolean zero value and this will be ignored when parsing the
// user's config.
func GetDefaultConfig() UserConfig {
	return UserConfig{
		Gui: GuiConfig{
			ScrollHeight:      3,
			ScrollPastBottom:  false,
			IgnoreMouseEvents: false,
			ShowNicklist:      true,
			WrapMainPanel:     true,
			Theme: ThemeConfig{
				ActiveBorderColor:   []string{"green", "bold"},
				InactiveBorderColor: []string{"default"},
				StatusTextColor:     []string{"blue"},
				HighlightColor:      []string{"yellow", "bold"},
			},
		},
		Engine: EngineConfig{
			HistoryMax:          500,
			UndoMax:             100,
			PasteThresholdBytes: 128,
			IdlePoll:            time.Second,
			AutoRenumber:        true,
			PositionPolicy:      "end",
			MaxBuffers:          500,
		},
		Keybinding:    GetDefaultKeybindingConfig(),
		Reporting:     "undetermined",
		ConfirmOnQuit: false,
	}
}

// AppConfig contains the base configuration fields required to run
// termchat-core's demo binary.
type AppConfig struct {
	Debug       bool   `long:"debug" env:"DEBUG" default:"false"`
	Version     string `long:"version" env:"VERSION" default:"unversioned"`
	Commit      string `long:"commit" env:"COMMIT"`
	BuildDate   string `long:"build-date" env:"BUILD_DATE"`
	Name        string `long:"name" env:"NAME" default:"termchat"`
	BuildSource string `long:"build-source" env:"BUILD_SOURCE" default:""`
	UserConfig  *UserConfig
	ConfigDir   string
}

// NewAppConfig makes a new app config, loading config.yml from configDir
// (created if absent) and merging it over the compiled-in defaults. The
// config directory is supplied by the caller rather than discovered via
// XDG lookup — the engine takes it as a parameter rather than owning
// locale/path discovery (see DESIGN.md).
func NewAppConfig(name, version, commit, date, buildSource string, debuggingFlag bool, configDir string) (*AppConfig, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, err
	}

	userConfig, err := loadUserConfigWithDefaults(configDir)
	if err != nil {
		return nil, err
	}

	appConfig := &AppConfig{
		Name:        name,
		Version:     version,
		Commit:      commit,
		BuildDate:   date,
		Debug:       debuggingFlag || os.Getenv("DEBUG") == "TRUE",
		BuildSource: buildSource,
		UserConfig:  userConfig,
		ConfigDir:   configDir,
	}

	return appConfig, nil
}

func loadUserConfigWithDefaults(configDir string) (*UserConfig, error) {
	config := GetDefaultConfig()
	return loadUserConfig(configDir, &config)
}

func loadUserConfig(configDir string, base *UserConfig) (*UserConfig, error) {
	fileName := filepath.Join(configDir, "config.yml")

	if _, err := os.Stat(fileName); err != nil {
		if os.IsNotExist(err) {
			file, err := os.Create(fileName)
			if err != nil {
				return nil, err
			}
			file.Close()
		} else {
			return nil, err
		}
	}

	content, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(content, base); err != nil {
		return nil, err
	}

	return base, nil
}

// WriteToUserConfig allows you to set a value on the user config to be
// saved. Note that if you set a zero-value, it may be ignored, e.g. a
// false, 0, or empty string, because of the omitempty yaml directive that
// keeps config.yml free of noise.
func (c *AppConfig) WriteToUserConfig(updateConfig func(*UserConfig) error) error {
	userConfig, err := loadUserConfig(c.ConfigDir, &UserConfig{})
	if err != nil {
		return err
	}

	if err := updateConfig(userConfig); err != nil {
		return err
	}

	file, err := os.OpenFile(c.ConfigFilename(), os.O_WRONLY|os.O_CREATE, 0o666)
	if err != nil {
		return err
	}
	defer file.Close()

	return yaml.NewEncoder(file).Encode(userConfig)
}

// ConfigFilename returns the filename of the current config file.
func (c *AppConfig) ConfigFilename() string {
	return filepath.Join(c.ConfigDir, "config.yml")
}
