package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cmd := &cobra.Command{Use: "test"}
	defaults := map[string]any{
		"database.type":   "sqlite",
		"database.dsn":    "./confstore.db",
		"profile":         "default",
		"default_profile": "default",
		"language":        "en",
	}

	c, err := LoadConfig[Config](cmd, defaults, nil)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if c.Database.Type != "sqlite" || c.Database.DSN != "./confstore.db" {
		t.Fatalf("defaults not applied: %+v", c)
	}
	if c.Profile != "default" || c.DefaultProfile != "default" {
		t.Fatalf("profile defaults not applied: %+v", c)
	}
}

func TestLoadConfig_ExplicitFileWins(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := "database:\n  type: postgres\n  dsn: host=db\nprofile: work\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing config file failed: %v", err)
	}

	cmd := &cobra.Command{Use: "test"}
	defaults := map[string]any{"database.type": "sqlite"}

	c, err := LoadConfig[Config](cmd, defaults, &path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if c.Database.Type != "postgres" || c.Profile != "work" {
		t.Fatalf("explicit config file not honored: %+v", c)
	}
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("CONFSTORE_PROFILE", "travel")

	cmd := &cobra.Command{Use: "test"}
	c, err := LoadConfig[Config](cmd, map[string]any{"profile": "default"}, nil)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if c.Profile != "travel" {
		t.Fatalf("environment override not applied: %+v", c)
	}
}

func TestWriteConfigFile_RoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var c Config
	c.Database.Type = "sqlite"
	c.Database.DSN = "./test.db"
	c.Profile = "default"

	if err := WriteConfigFile(&c, false); err != nil {
		t.Fatalf("WriteConfigFile failed: %v", err)
	}

	path, err := getConfigPath(false)
	if err != nil {
		t.Fatalf("getConfigPath failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("written config not readable: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("written config is empty")
	}
}
