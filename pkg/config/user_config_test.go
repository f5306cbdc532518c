package config

import "testing"

func TestGetDefaultKeybindingConfig(t *testing.T) {
	defaults := GetDefaultKeybindingConfig()

	if defaults.Universal.Quit != "q" {
		t.Errorf("Universal.Quit = %q, want q", defaults.Universal.Quit)
	}
	if defaults.Universal.QuitAlt != "<c-c>" {
		t.Errorf("Universal.QuitAlt = %q, want <c-c>", defaults.Universal.QuitAlt)
	}
	if defaults.Input.Submit != "<enter>" {
		t.Errorf("Input.Submit = %q, want <enter>", defaults.Input.Submit)
	}
	if defaults.Window.SplitHorizontal != "<c-w>s" {
		t.Errorf("Window.SplitHorizontal = %q, want <c-w>s", defaults.Window.SplitHorizontal)
	}
	if defaults.Search.Stop != "<esc>" {
		t.Errorf("Search.Stop = %q, want <esc>", defaults.Search.Stop)
	}
}

func TestDefaultKeybindingsValidate(t *testing.T) {
	uc := GetDefaultConfig()
	if err := uc.Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
}
