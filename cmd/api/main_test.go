package main

import (
	"testing"

	"homelytics/internal/config"
	"homelytics/internal/design"
)

func TestRenderSettingsFallsBackToDefaults(t *testing.T) {
	got := renderSettings(config.RenderConfig{Steps: 30})
	want := design.DefaultRenderSettings()
	want.Steps = 30
	if got != want {
		t.Fatalf("renderSettings = %+v, want %+v", got, want)
	}
}
