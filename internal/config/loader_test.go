package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/halloffame/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.StorageDriver, convey.ShouldEqual, config.DriverMemory)
				convey.So(cfg.AdminUserIDs, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("HOF_ADDR", ":8080")
			_ = os.Setenv("HOF_LOG_FORMAT", "json")
			_ = os.Setenv("HOF_STORAGE_DRIVER", "sqlite")
			_ = os.Setenv("HOF_STORAGE_DSN", "file:hof.db")
			_ = os.Setenv("HOF_MAX_IMPORT_ROWS", "250")
			_ = os.Setenv("HOF_ADMIN_USER_IDS", "alice, bob,,carol")
			_ = os.Setenv("HOF_SEED_SAMPLE_DATA", "true")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.StorageDriver, convey.ShouldEqual, config.DriverSQLite)
				convey.So(cfg.StorageDSN, convey.ShouldEqual, "file:hof.db")
				convey.So(cfg.MaxImportRows, convey.ShouldEqual, 250)
				convey.So(cfg.AdminUserIDs, convey.ShouldResemble, []string{"alice", "bob", "carol"})
				convey.So(cfg.SeedSampleData, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
# comments are fine
addr: ":9090"
log_level: debug
max_rankings_limit: 25
admin_user_ids:
  - root
  - ops
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("HOF_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and keep other defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.MaxRankingsLimit, convey.ShouldEqual, 25)
				convey.So(cfg.AdminUserIDs, convey.ShouldResemble, []string{"root", "ops"})
				convey.So(cfg.MaxImportRows, convey.ShouldEqual, 5_000)
			})
		})

		convey.Convey("When both file and environment variables are set", func() {
			tmpFile := createTempConfigFile("addr: \":9090\"\nmax_rankings_limit: 10\n")
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("HOF_CONFIG", tmpFile)
			_ = os.Setenv("HOF_ADDR", ":7070")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then env vars should take precedence", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.MaxRankingsLimit, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("HOF_CONFIG", "/nonexistent/hof.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("HOF_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When a SQL driver is selected without a DSN", func() {
			_ = os.Setenv("HOF_STORAGE_DRIVER", "postgres")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("HOF_MAX_IMPORT_ROWS", "invalid")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"HOF_CONFIG",
		"HOF_ADDR",
		"HOF_LOG_LEVEL",
		"HOF_LOG_FORMAT",
		"HOF_STORAGE_DRIVER",
		"HOF_STORAGE_DSN",
		"HOF_MAX_IMPORT_ROWS",
		"HOF_MAX_RANKINGS_LIMIT",
		"HOF_ADMIN_USER_IDS",
		"HOF_SEED_SAMPLE_DATA",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "hof-config-*.yaml")
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
