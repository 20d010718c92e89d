package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"timeline2html/internal/config"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		clearConfigEnvVars()
		dir := t.TempDir()

		convey.Convey("When loading with defaults only", func() {
			cfg, err := config.Load("")

			convey.Convey("Then it should return the defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.Default())
			})
		})

		convey.Convey("When loading a YAML file", func() {
			path := writeConfig(dir, `
render:
  title: "Onderzoek 2024"
  truncate_at: 60
  horizontal:
    scale: proportional
    axis_width: 4000
input:
  columns:
    source: ""
  affirmative: [oui, si]
`)
			cfg, err := config.Load(path)

			convey.Convey("Then file values override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Render.Title, convey.ShouldEqual, "Onderzoek 2024")
				convey.So(cfg.Render.TruncateAt, convey.ShouldEqual, 60)
				convey.So(cfg.Render.Horizontal.Scale, convey.ShouldEqual, config.ScaleProportional)
				convey.So(cfg.Render.Horizontal.AxisWidth, convey.ShouldEqual, 4000)
				convey.So(cfg.Input.Columns.Source, convey.ShouldEqual, "")
				convey.So(cfg.Input.Affirmative, convey.ShouldResemble, []string{"oui", "si"})
			})

			convey.Convey("Then untouched keys keep their defaults", func() {
				convey.So(cfg.Render.Horizontal.SlotGap, convey.ShouldEqual, 24)
				convey.So(cfg.Input.Columns.Date, convey.ShouldEqual, "Datum")
				convey.So(cfg.Render.Labels.AllDay, convey.ShouldEqual, "Hele dag")
			})
		})

		convey.Convey("When the file path comes from the environment", func() {
			path := writeConfig(dir, "render:\n  lang: en\n")
			_ = os.Setenv(config.EnvConfigFile, path)
			defer clearConfigEnvVars()

			cfg, err := config.Load("")

			convey.Convey("Then that file is used", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Render.Lang, convey.ShouldEqual, "en")
			})
		})

		convey.Convey("When both a file and environment variables are set", func() {
			path := writeConfig(dir, "render:\n  title: Bestand\n  horizontal:\n    slot_gap: 10\n")
			_ = os.Setenv("TIMELINE_RENDER__TITLE", "Omgeving")
			_ = os.Setenv("TIMELINE_LOG_LEVEL", "debug")
			_ = os.Setenv("TIMELINE_INPUT__NEGATIVE", "non,nein")
			_ = os.Setenv("TIMELINE_METRICS_NAMESPACE", "dossier")
			defer clearConfigEnvVars()

			cfg, err := config.Load(path)

			convey.Convey("Then the environment wins over the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Render.Title, convey.ShouldEqual, "Omgeving")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.Input.Negative, convey.ShouldResemble, []string{"non", "nein"})
				convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "dossier")
			})

			convey.Convey("Then file values without an override remain", func() {
				convey.So(cfg.Render.Horizontal.SlotGap, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When the file does not exist", func() {
			cfg, err := config.Load(filepath.Join(dir, "missing.yaml"))

			convey.Convey("Then a load error is returned", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the file is not valid YAML", func() {
			path := writeConfig(dir, "render: [unclosed\n")
			cfg, err := config.Load(path)

			convey.Convey("Then a load error is returned", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the result does not validate", func() {
			_ = os.Setenv("TIMELINE_RENDER__HORIZONTAL__SCALE", "logarithmic")
			defer clearConfigEnvVars()

			cfg, err := config.Load("")

			convey.Convey("Then a validation error is returned", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "logarithmic")
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, v := range []string{
		config.EnvConfigFile,
		"TIMELINE_RENDER__TITLE",
		"TIMELINE_LOG_LEVEL",
		"TIMELINE_INPUT__NEGATIVE",
		"TIMELINE_METRICS_NAMESPACE",
		"TIMELINE_RENDER__HORIZONTAL__SCALE",
	} {
		_ = os.Unsetenv(v)
	}
}

func writeConfig(dir, content string) string {
	f, err := os.CreateTemp(dir, "timeline-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := f.WriteString(content); err != nil {
		panic(err)
	}
	if err := f.Close(); err != nil {
		panic(err)
	}
	return f.Name()
}
