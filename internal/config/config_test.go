package config

import (
	"os"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("APP_ENV", "test")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Port != ":8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, ":8080")
	}
	if cfg.TransitRadiusKm != 0.5 {
		t.Errorf("TransitRadiusKm = %v, want 0.5", cfg.TransitRadiusKm)
	}
	if cfg.DeliveredRadiusKm != 0.1 {
		t.Errorf("DeliveredRadiusKm = %v, want 0.1", cfg.DeliveredRadiusKm)
	}
	if cfg.AvgSpeedKmh != 30.0 {
		t.Errorf("AvgSpeedKmh = %v, want 30", cfg.AvgSpeedKmh)
	}
	if cfg.JWTSecret == "" {
		t.Error("JWTSecret is empty, want a default")
	}
}
