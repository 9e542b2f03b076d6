// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	cfg "github.com/toeirei/leasemaster/internal/config"
)

// isolate points the user config dir and the working directory at a fresh
// temp dir so no real leasemaster.yaml is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("HOME", tmp)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return tmp
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	isolate(t)
	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), nil)
	if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
		t.Fatalf("expected ConfigFileNotFoundError, got: %T %v", err, err)
	}
	if got.Database.Type != "sqlite" || got.Database.Dsn != "./leasemaster.db" {
		t.Fatalf("unexpected database defaults: %+v", got.Database)
	}
	if got.Leasing.DeletePolicy != "restrict" || got.Auth.AdminUsername != "admin" || got.Auth.BcryptCost != 10 {
		t.Fatalf("unexpected defaults: %+v", got)
	}
}

func TestLoadConfig_ReadsExplicitFile(t *testing.T) {
	tmp := isolate(t)
	yaml := "database:\n  type: postgres\n  dsn: postgresql://user@/db\nlanguage: ru\nleasing:\n  delete_policy: cascade\n"
	file := filepath.Join(tmp, "cfg.yaml")
	if err := os.WriteFile(file, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &file)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if got.Database.Type != "postgres" {
		t.Fatalf("expected postgres, got %q", got.Database.Type)
	}
	if got.Language != "ru" || got.Leasing.DeletePolicy != "cascade" {
		t.Fatalf("unexpected values: %+v", got)
	}
	if got.Auth.AdminUsername != "admin" {
		t.Fatalf("defaults must fill keys the file omits, got %q", got.Auth.AdminUsername)
	}
}

func TestLoadConfig_EnvAndFlagsOverride(t *testing.T) {
	isolate(t)
	t.Setenv("LEASEMASTER_DATABASE_DSN", "file:env.db")
	t.Setenv("LEASEMASTER_LEASING_DELETE_POLICY", "cascade")

	cmd := &cobra.Command{}
	cmd.Flags().String("database.dsn", "", "")
	if err := cmd.Flags().Set("database.dsn", "file:flag.db"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	got, _ := cfg.LoadConfig[cfg.Config](cmd, cfg.Defaults(), nil)
	if got.Database.Dsn != "file:flag.db" {
		t.Fatalf("flag should win over env, got %q", got.Database.Dsn)
	}
	if got.Leasing.DeletePolicy != "cascade" {
		t.Fatalf("env should win over default, got %q", got.Leasing.DeletePolicy)
	}
}

func TestWriteConfigFile_CreatesPrivateFile(t *testing.T) {
	isolate(t)
	c := cfg.Config{}
	c.Database.Type = "sqlite"
	c.Database.Dsn = "./leasemaster.db"
	c.Language = "en"

	path, err := cfg.WriteConfigFile(&c, false)
	if err != nil {
		t.Fatalf("WriteConfigFile failed: %v", err)
	}
	want, err := cfg.GetConfigPath(false)
	if err != nil {
		t.Fatalf("GetConfigPath failed: %v", err)
	}
	if path != want {
		t.Fatalf("wrote %s, expected %s", path, want)
	}
	st, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected config file at %s, stat error: %v", path, err)
	}
	if st.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600 permissions, got %v", st.Mode().Perm())
	}

	// The written file loads back.
	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Database.Dsn != "./leasemaster.db" {
		t.Fatalf("round trip lost dsn: %+v", got.Database)
	}
}
