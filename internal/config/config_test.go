package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, name, body string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	path := filepath.Join(dir, "config", name+".yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore chdir: %v", err)
		}
	})
}

func TestLoadCollab_ParsesAllSections(t *testing.T) {
	writeConfigFile(t, "collabConfig", `
running:
  port: 8080
mysql:
  dsn: "user:pass@tcp(127.0.0.1:3306)/collab"
redis:
  addrs:
    - "127.0.0.1:6379"
  password: ""
kafka:
  brokers:
    - "127.0.0.1:9092"
  topic: "doc-ops"
auth:
  path: "http://localhost:8081"
`)

	cfg, err := LoadCollab()
	if err != nil {
		t.Fatalf("LoadCollab() error = %v", err)
	}
	if cfg.Running.Port != 8080 {
		t.Fatalf("Running.Port = %d, want 8080", cfg.Running.Port)
	}
	if cfg.Kafka.Topic != "doc-ops" {
		t.Fatalf("Kafka.Topic = %q, want %q", cfg.Kafka.Topic, "doc-ops")
	}
	if len(cfg.Redis.Addrs) != 1 || cfg.Redis.Addrs[0] != "127.0.0.1:6379" {
		t.Fatalf("Redis.Addrs = %v, want [127.0.0.1:6379]", cfg.Redis.Addrs)
	}
	if cfg.Auth.Path != "http://localhost:8081" {
		t.Fatalf("Auth.Path = %q, want %q", cfg.Auth.Path, "http://localhost:8081")
	}
}

func TestLoadAuth_ParsesAllSections(t *testing.T) {
	writeConfigFile(t, "authConfig", `
running:
  port: 8081
mysql:
  dsn: "user:pass@tcp(127.0.0.1:3306)/auth"
`)

	cfg, err := LoadAuth()
	if err != nil {
		t.Fatalf("LoadAuth() error = %v", err)
	}
	if cfg.Running.Port != 8081 {
		t.Fatalf("Running.Port = %d, want 8081", cfg.Running.Port)
	}
	if cfg.Mysql.DSN != "user:pass@tcp(127.0.0.1:3306)/auth" {
		t.Fatalf("Mysql.DSN = %q, want the configured DSN", cfg.Mysql.DSN)
	}
}
