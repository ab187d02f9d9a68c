package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/ktready/internal/config"
	"github.com/okian/ktready/internal/domain/readiness"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.ProgressPolicy, convey.ShouldEqual, "round")
				convey.So(cfg.RequireCoordinates, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("KTREADY_ADDR", ":8080")
			_ = os.Setenv("KTREADY_PROGRESS_POLICY", "truncate")
			_ = os.Setenv("KTREADY_DATASET_PATH", "/etc/ktready/dataset.yaml")
			_ = os.Setenv("KTREADY_REQUIRE_COORDINATES", "false")
			_ = os.Setenv("KTREADY_MARKER_JITTER", "0.5")
			_ = os.Setenv("KTREADY_LOG_FORMAT", "json")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.Policy(), convey.ShouldEqual, readiness.Truncate)
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "/etc/ktready/dataset.yaml")
				convey.So(cfg.RequireCoordinates, convey.ShouldBeFalse)
				convey.So(cfg.MarkerJitter, convey.ShouldEqual, 0.5)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(`
# service settings
addr: ":9090"
log_level: debug
progress_policy: truncate
marker_jitter: 0.1
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("KTREADY_CONFIG", tmpFile)
			_ = os.Setenv("KTREADY_ADDR", ":8080") // This should override the file
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")              // Overridden by env
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")          // From file
				convey.So(cfg.ProgressPolicy, convey.ShouldEqual, "truncate") // From file
				convey.So(cfg.MarkerJitter, convey.ShouldEqual, 0.1)          // From file
				convey.So(cfg.RequireCoordinates, convey.ShouldBeTrue)        // From defaults
				convey.So(cfg.LogFormat, convey.ShouldEqual, "text")          // From defaults
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("KTREADY_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("KTREADY_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			convey.So(cfg, convey.ShouldBeNil)
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("KTREADY_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unknown progress policy", func() {
			_ = os.Setenv("KTREADY_PROGRESS_POLICY", "ceiling")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "ceiling")
		})

		convey.Convey("When loading config with an unknown log format", func() {
			_ = os.Setenv("KTREADY_LOG_FORMAT", "xml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When loading config with a negative jitter", func() {
			_ = os.Setenv("KTREADY_MARKER_JITTER", "-1")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When loading config with a non-numeric jitter", func() {
			_ = os.Setenv("KTREADY_MARKER_JITTER", "wide")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			convey.So(cfg, convey.ShouldBeNil)
		})
	})
}

// Helper functions.
func clearConfigEnvVars() {
	envVars := []string{
		"KTREADY_CONFIG",
		"KTREADY_ADDR",
		"KTREADY_LOG_LEVEL",
		"KTREADY_LOG_FORMAT",
		"KTREADY_DATASET_PATH",
		"KTREADY_PROGRESS_POLICY",
		"KTREADY_REQUIRE_COORDINATES",
		"KTREADY_MARKER_JITTER",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "ktready-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
