package core

import (
	"context"
	"testing"
)

type fixedConfigProvider struct {
	cfg Config
}

func (p *fixedConfigProvider) Load(context.Context, Config) (Config, error) {
	return p.cfg, nil
}

func TestNewService_DefaultConfig(t *testing.T) {
	svc, err := NewService(Config{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	cfg := svc.Config()
	if cfg.ServiceName != "leave-lookup" {
		t.Fatalf("expected default service name, got %q", cfg.ServiceName)
	}
	if cfg.Table.Name != "leaveBalance" {
		t.Fatalf("expected default table name, got %q", cfg.Table.Name)
	}
	if cfg.Table.KeyAttribute != "empID" {
		t.Fatalf("expected default key attribute, got %q", cfg.Table.KeyAttribute)
	}
	if cfg.Probe.Disabled {
		t.Fatalf("expected probe enabled by default")
	}
	if cfg.Probe.SampleLimit != 5 {
		t.Fatalf("expected default sample limit 5, got %d", cfg.Probe.SampleLimit)
	}
}

func TestNewService_RuntimeConfigWinsOverLoaded(t *testing.T) {
	svc, err := NewService(
		Config{Table: TableConfig{Name: "leaveBalanceHRTable"}},
		WithConfigProvider(&fixedConfigProvider{cfg: Config{
			ServiceName: "leave-lookup",
			Table:       TableConfig{Name: "fromConfig", KeyAttribute: "empID"},
		}}),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if got := svc.Config().Table.Name; got != "leaveBalanceHRTable" {
		t.Fatalf("expected runtime table name to win, got %q", got)
	}
	if got := svc.Config().Table.KeyAttribute; got != "empID" {
		t.Fatalf("expected key attribute merged from lower layers, got %q", got)
	}
}

func TestGoOptionsResolver_LayerPrecedence(t *testing.T) {
	defaults := DefaultConfig()
	loaded := Config{ServiceName: "loaded", Table: TableConfig{Name: "loadedTable"}}
	runtime := Config{Table: TableConfig{Name: "runtimeTable"}}

	resolved, err := GoOptionsResolver{}.Resolve(defaults, loaded, runtime)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ServiceName != "loaded" {
		t.Fatalf("expected loaded service name, got %q", resolved.ServiceName)
	}
	if resolved.Table.Name != "runtimeTable" {
		t.Fatalf("expected runtime table name, got %q", resolved.Table.Name)
	}
	if resolved.Table.KeyAttribute != "empID" {
		t.Fatalf("expected default key attribute, got %q", resolved.Table.KeyAttribute)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}

	cfg.Table.Name = " "
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected missing table name to fail validation")
	}

	cfg = DefaultConfig()
	cfg.Probe.SampleLimit = -1
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected negative sample limit to fail validation")
	}
}
