package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Assistant.MaxToolRounds != 8 {
		t.Errorf("Assistant.MaxToolRounds = %d, want 8", cfg.Assistant.MaxToolRounds)
	}
	if cfg.AI.Provider != "openai" {
		t.Errorf("AI.Provider = %q, want openai", cfg.AI.Provider)
	}
	if cfg.Storage.Type != "local" {
		t.Errorf("Storage.Type = %q, want local", cfg.Storage.Type)
	}
}

func TestGetDSN(t *testing.T) {
	db := &DatabaseConfig{
		Host: "localhost", Port: 5432, User: "postgres",
		Password: "secret", DBName: "opsdeck", SSLMode: "disable",
	}

	want := "host=localhost port=5432 user=postgres password=secret dbname=opsdeck sslmode=disable"
	if got := db.GetDSN(); got != want {
		t.Errorf("GetDSN() = %q, want %q", got, want)
	}
}

func TestGetAddr(t *testing.T) {
	srv := &ServerConfig{Host: "0.0.0.0", Port: 9090}
	if got := srv.GetAddr(); got != "0.0.0.0:9090" {
		t.Errorf("GetAddr() = %q, want 0.0.0.0:9090", got)
	}
}
