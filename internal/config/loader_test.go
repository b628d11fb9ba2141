package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/brownkon/StarWarsApp/internal/config"
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
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8000")
				convey.So(cfg.SWAPIURL, convey.ShouldEqual, "https://swapi.dev/api")
				convey.So(cfg.CachePath, convey.ShouldEqual, "data/cache.db")
				convey.So(cfg.MaxPages, convey.ShouldEqual, 10)
				convey.So(cfg.RequestTimeoutMS, convey.ShouldEqual, 10_000)
				convey.So(cfg.ResolveConcurrency, convey.ShouldEqual, 8)
				convey.So(cfg.ResolveTimeoutMS, convey.ShouldEqual, 5_000)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			clearConfigEnvVars()
			t.Setenv("SWEX_ADDR", ":9000")
			t.Setenv("SWEX_SWAPI_URL", "http://localhost:4000/api")
			t.Setenv("SWEX_CACHE_PATH", "/tmp/swex.db")
			t.Setenv("SWEX_RESOLVE_CONCURRENCY", "4")

			cfg, err := config.Load(ctx)

			convey.Convey("Then env values should override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9000")
				convey.So(cfg.SWAPIURL, convey.ShouldEqual, "http://localhost:4000/api")
				convey.So(cfg.CachePath, convey.ShouldEqual, "/tmp/swex.db")
				convey.So(cfg.ResolveConcurrency, convey.ShouldEqual, 4)
				// Untouched fields keep their defaults.
				convey.So(cfg.MaxPages, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When loading config from a YAML file", func() {
			clearConfigEnvVars()
			path := filepath.Join(t.TempDir(), "config.yaml")
			yaml := "addr: \":7070\"\nmax_pages: 3\nlog_level: debug\n"
			convey.So(os.WriteFile(path, []byte(yaml), 0o600), convey.ShouldBeNil)
			t.Setenv("SWEX_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values should override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.MaxPages, convey.ShouldEqual, 3)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			})

			convey.Convey("And env should still win over the file", func() {
				t.Setenv("SWEX_ADDR", ":6060")

				cfg, err := config.Load(ctx)

				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
			})
		})

		convey.Convey("When validation fails", func() {
			clearConfigEnvVars()
			t.Setenv("SWEX_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an invalid config error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"SWEX_CONFIG",
		"SWEX_LOG_LEVEL",
		"SWEX_ADDR",
		"SWEX_SWAPI_URL",
		"SWEX_CACHE_PATH",
		"SWEX_MAX_PAGES",
		"SWEX_REQUEST_TIMEOUT_MS",
		"SWEX_RESOLVE_CONCURRENCY",
		"SWEX_RESOLVE_TIMEOUT_MS",
	} {
		_ = os.Unsetenv(key)
	}
}
