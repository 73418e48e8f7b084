package main

import (
	"testing"

	"github.com/pblondin/stringify/config"
)

func resetFlags(t *testing.T) {
	t.Helper()
	flagSpreadsheet = ""
	flagPath = ""
	flagCredentials = ""
	flagXMLName = ""
	flagDefaultLang = ""
	flagIOSFilename = ""
	t.Cleanup(func() {
		flagSpreadsheet = ""
		flagPath = ""
		flagCredentials = ""
		flagXMLName = ""
		flagDefaultLang = ""
		flagIOSFilename = ""
	})
}

func TestBuildConfigRequiresSpreadsheet(t *testing.T) {
	resetFlags(t)
	if _, err := buildConfig(config.ModeExportAll); err == nil {
		t.Error("buildConfig without spreadsheet: expected error")
	}
}

func TestBuildConfigAppliesFlags(t *testing.T) {
	resetFlags(t)
	flagSpreadsheet = "App Copy"
	flagPath = "./res"
	flagDefaultLang = "de"

	cfg, err := buildConfig(config.ModeImportAndroid)
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}
	if cfg.Mode != config.ModeImportAndroid {
		t.Errorf("Mode = %q, want %q", cfg.Mode, config.ModeImportAndroid)
	}
	if cfg.Spreadsheet != "App Copy" {
		t.Errorf("Spreadsheet = %q, want %q", cfg.Spreadsheet, "App Copy")
	}
	if cfg.Path != "./res" {
		t.Errorf("Path = %q, want %q", cfg.Path, "./res")
	}
	if cfg.Android.DefaultLanguage != "de" {
		t.Errorf("Android.DefaultLanguage = %q, want %q", cfg.Android.DefaultLanguage, "de")
	}
	if cfg.IOS.Filename != "Localizable.strings" {
		t.Errorf("IOS.Filename = %q, want default %q", cfg.IOS.Filename, "Localizable.strings")
	}
}

func TestPlatformModeMaps(t *testing.T) {
	if exportModes["all"] != config.ModeExportAll {
		t.Errorf("exportModes[all] = %q", exportModes["all"])
	}
	if exportModes["ios"] != config.ModeExportIOS {
		t.Errorf("exportModes[ios] = %q", exportModes["ios"])
	}
	if importModes["android"] != config.ModeImportAndroid {
		t.Errorf("importModes[android] = %q", importModes["android"])
	}
	if _, ok := importModes["all"]; ok {
		t.Error("importModes should not accept \"all\"")
	}
}
