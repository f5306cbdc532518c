package config

// KeybindingConfig contains all keybinding configurations for termchat-core's
// demo renderer.
type KeybindingConfig struct {
	Universal KeybindingUniversalConfig `yaml:"universal"`
	Input     KeybindingInputConfig     `yaml:"input"`
	Window    KeybindingWindowConfig    `yaml:"window"`
	Search    KeybindingSearchConfig    `yaml:"search"`
}

// KeybindingUniversalConfig contains keybindings available globally.
type KeybindingUniversalConfig struct {
	Quit           string `yaml:"quit,omitempty"`
	QuitAlt        string `yaml:"quitAlt,omitempty"`
	NextWindow     string `yaml:"nextWindow,omitempty"`
	PrevWindow     string `yaml:"prevWindow,omitempty"`
	NextBuffer     string `yaml:"nextBuffer,omitempty"`
	PrevBuffer     string `yaml:"prevBuffer,omitempty"`
	JumpToBuffer   string `yaml:"jumpToBuffer,omitempty"`
	ToggleNicklist string `yaml:"toggleNicklist,omitempty"`
}

// KeybindingInputConfig maps to the operations the input editor
// (internal/inputline) supports.
type KeybindingInputConfig struct {
	Submit              string `yaml:"submit,omitempty"`
	DeletePrevChar      string `yaml:"deletePrevChar,omitempty"`
	DeleteNextChar      string `yaml:"deleteNextChar,omitempty"`
	DeletePrevWord      string `yaml:"deletePrevWord,omitempty"`
	DeleteToLineStart   string `yaml:"deleteToLineStart,omitempty"`
	DeleteToLineEnd     string `yaml:"deleteToLineEnd,omitempty"`
	MoveBeginningOfLine string `yaml:"moveBeginningOfLine,omitempty"`
	MoveEndOfLine       string `yaml:"moveEndOfLine,omitempty"`
	MovePrevWord        string `yaml:"movePrevWord,omitempty"`
	MoveNextWord        string `yaml:"moveNextWord,omitempty"`
	HistoryPrev         string `yaml:"historyPrev,omitempty"`
	HistoryNext         string `yaml:"historyNext,omitempty"`
	TransposeChars      string `yaml:"transposeChars,omitempty"`
	Paste               string `yaml:"paste,omitempty"`
}

// KeybindingWindowConfig maps to internal/wintree split/focus/scroll operations.
type KeybindingWindowConfig struct {
	SplitHorizontal string `yaml:"splitHorizontal,omitempty"`
	SplitVertical   string `yaml:"splitVertical,omitempty"`
	Merge           string `yaml:"merge,omitempty"`
	MergeAll        string `yaml:"mergeAll,omitempty"`
	ScrollUp        string `yaml:"scrollUp,omitempty"`
	ScrollDown      string `yaml:"scrollDown,omitempty"`
	ScrollTop       string `yaml:"scrollTop,omitempty"`
	ScrollBottom    string `yaml:"scrollBottom,omitempty"`
	Balance         string `yaml:"balance,omitempty"`
}

// KeybindingSearchConfig maps to internal/search's start/advance/stop cycle.
type KeybindingSearchConfig struct {
	Start string `yaml:"start,omitempty"`
	Next  string `yaml:"next,omitempty"`
	Prev  string `yaml:"prev,omitempty"`
	Stop  string `yaml:"stop,omitempty"`
}

// GetDefaultKeybindingConfig returns termchat-core's default key layout, in
// a vi/readline-influenced style.
func GetDefaultKeybindingConfig() KeybindingConfig {
	return KeybindingConfig{
		Universal: KeybindingUniversalConfig{
			Quit:           "q",
			QuitAlt:        "<c-c>",
			NextWindow:     "<tab>",
			PrevWindow:     "<backtab>",
			NextBuffer:     "<c-n>",
			PrevBuffer:     "<c-p>",
			JumpToBuffer:   "<a-j>",
			ToggleNicklist: "<f7>",
		},
		Input: KeybindingInputConfig{
			Submit:              "<enter>",
			DeletePrevChar:      "<backspace>",
			DeleteNextChar:      "<delete>",
			DeletePrevWord:      "<c-w>",
			DeleteToLineStart:   "<c-u>",
			DeleteToLineEnd:     "<c-k>",
			MoveBeginningOfLine: "<c-a>",
			MoveEndOfLine:       "<c-e>",
			MovePrevWord:        "<a-b>",
			MoveNextWord:        "<a-f>",
			HistoryPrev:         "<up>",
			HistoryNext:         "<down>",
			TransposeChars:      "<c-t>",
			Paste:               "<c-y>",
		},
		Window: KeybindingWindowConfig{
			SplitHorizontal: "<c-w>s",
			SplitVertical:   "<c-w>v",
			Merge:           "<c-w>m",
			MergeAll:        "<c-w>o",
			ScrollUp:        "<pgup>",
			ScrollDown:      "<pgdn>",
			ScrollTop:       "<c-w><home>",
			ScrollBottom:    "<c-w><end>",
			Balance:         "<c-w>=",
		},
		Search: KeybindingSearchConfig{
			Start: "<c-r>",
			Next:  "<c-r>",
			Prev:  "<c-s>",
			Stop:  "<esc>",
		},
	}
}
