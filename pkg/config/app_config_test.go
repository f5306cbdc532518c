package config

import (
	"os"
	"testing"

	"gopkg.in/yaml.v3"
)

func newTestAppConfig(t *testing.T) *AppConfig {
	t.Helper()
	conf, err := NewAppConfig("name", "version", "commit", "date", "buildSource", false, t.TempDir())
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	return conf
}

func TestNewAppConfigAppliesDefaults(t *testing.T) {
	conf := newTestAppConfig(t)

	if conf.UserConfig.Engine.HistoryMax != 500 {
		t.Fatalf("Engine.HistoryMax = %d, want 500", conf.UserConfig.Engine.HistoryMax)
	}
	if conf.UserConfig.Engine.PositionPolicy != "end" {
		t.Fatalf("Engine.PositionPolicy = %q, want end", conf.UserConfig.Engine.PositionPolicy)
	}
	if !conf.UserConfig.Gui.ShowNicklist {
		t.Fatal("Gui.ShowNicklist default should be true")
	}
}

func TestWritingToConfigFile(t *testing.T) {
	conf := newTestAppConfig(t)

	testFn := func(t *testing.T, ac *AppConfig, newValue bool) {
		t.Helper()
		updateFn := func(uc *UserConfig) error {
			uc.ConfirmOnQuit = newValue
			return nil
		}

		if err := ac.WriteToUserConfig(updateFn); err != nil {
			t.Fatalf("Unexpected error: %s", err)
		}

		file, err := os.OpenFile(ac.ConfigFilename(), os.O_RDONLY, 0o660)
		if err != nil {
			t.Fatalf("Unexpected error: %s", err)
		}
		defer file.Close()

		sampleUC := UserConfig{}
		if err := yaml.NewDecoder(file).Decode(&sampleUC); err != nil {
			t.Fatalf("Unexpected error: %s", err)
		}

		if sampleUC.ConfirmOnQuit != newValue {
			t.Fatalf("Got %v, Expected %v\n", sampleUC.ConfirmOnQuit, newValue)
		}
	}

	// insert value into an empty file
	testFn(t, conf, true)

	// modifying an existing file that already has 'ConfirmOnQuit'
	testFn(t, conf, false)
}
