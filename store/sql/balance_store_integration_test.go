package sqlstore_test

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"testing"
	"time"

	persistence "github.com/goliatone/go-persistence-bun"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-leave-lookup/core"
	"github.com/goliatone/go-leave-lookup/migrations"
	sqlstore "github.com/goliatone/go-leave-lookup/store/sql"
)

type testPersistenceConfig struct {
	driver string
	server string
}

func (c testPersistenceConfig) GetDebug() bool {
	return false
}

func (c testPersistenceConfig) GetDriver() string {
	return c.driver
}

func (c testPersistenceConfig) GetServer() string {
	return c.server
}

func (c testPersistenceConfig) GetPingTimeout() time.Duration {
	return time.Second
}

func (c testPersistenceConfig) GetOtelIdentifier() string {
	return "go-leave-lookup-tests"
}

func newSQLiteClient(t *testing.T) (*persistence.Client, func()) {
	t.Helper()

	dsn := fmt.Sprintf(
		"file:leave-lookup-test-%d?mode=memory&cache=shared&_foreign_keys=on",
		time.Now().UnixNano(),
	)
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	cfg := testPersistenceConfig{
		driver: "sqlite3",
		server: dsn,
	}
	client, err := persistence.New(cfg, sqlDB, sqlitedialect.New())
	if err != nil {
		_ = sqlDB.Close()
		t.Fatalf("new persistence client: %v", err)
	}

	ctx := context.Background()
	_, err = migrations.Register(ctx, func(_ context.Context, dialect string, _ string, fsys fs.FS) error {
		if dialect != migrations.DialectSQLite {
			return nil
		}
		client.RegisterSQLMigrations(fsys)
		return nil
	}, migrations.WithValidationTargets(migrations.DialectSQLite))
	if err != nil {
		_ = client.Close()
		t.Fatalf("register migrations: %v", err)
	}
	if err := client.Migrate(ctx); err != nil {
		_ = client.Close()
		t.Fatalf("migrate: %v", err)
	}

	return client, func() {
		_ = client.Close()
	}
}

func TestMigrationSmokeApplySQLite(t *testing.T) {
	client, cleanup := newSQLiteClient(t)
	defer cleanup()

	var tableName string
	if err := client.DB().NewRaw(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?",
		"leave_balances",
	).Scan(context.Background(), &tableName); err != nil {
		t.Fatalf("query sqlite master: %v", err)
	}
	if tableName != "leave_balances" {
		t.Fatalf("expected leave_balances table, got %q", tableName)
	}
}

func TestBalanceStore_UpsertAndGetRecord(t *testing.T) {
	ctx := context.Background()
	client, cleanup := newSQLiteClient(t)
	defer cleanup()

	factory, err := sqlstore.NewRepositoryFactoryFromPersistence(client)
	if err != nil {
		t.Fatalf("new repository factory: %v", err)
	}
	store := factory.BalanceStore()
	if store == nil {
		t.Fatal("expected balance store from factory")
	}

	attributes := map[string]core.Attribute{
		"balance": core.NumberAttribute("15"),
		"name":    core.StringAttribute("Ana"),
		"active":  core.BoolAttribute(true),
	}
	if err := store.Upsert(ctx, "12345", attributes); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	record, err := store.GetRecord(ctx, "12345")
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if got := record["empID"]; got.Type != core.AttributeTypeNumber || got.Value != "12345" {
		t.Fatalf("unexpected empID attribute: %+v", got)
	}
	if got := record["balance"]; got.Type != core.AttributeTypeNumber || got.Value != "15" {
		t.Fatalf("unexpected balance attribute: %+v", got)
	}

	decoded := core.DecodeRecord(record)
	if got := decoded["balance"]; got != int64(15) {
		t.Fatalf("expected decoded balance int64 15, got %v (%T)", got, got)
	}
	if got := decoded["name"]; got != "Ana" {
		t.Fatalf("expected decoded name Ana, got %v", got)
	}
}

func TestBalanceStore_UpsertReplacesExistingRow(t *testing.T) {
	ctx := context.Background()
	client, cleanup := newSQLiteClient(t)
	defer cleanup()

	factory, err := sqlstore.NewRepositoryFactoryFromPersistence(client)
	if err != nil {
		t.Fatalf("new repository factory: %v", err)
	}
	store := factory.BalanceStore()

	if err := store.Upsert(ctx, "777", map[string]core.Attribute{
		"balance": core.NumberAttribute("10"),
	}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := store.Upsert(ctx, "777", map[string]core.Attribute{
		"balance": core.NumberAttribute("8"),
	}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	record, err := store.GetRecord(ctx, "777")
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if got := record["balance"].Value; got != "8" {
		t.Fatalf("expected replaced balance 8, got %s", got)
	}
}

func TestBalanceStore_MissingEmployee(t *testing.T) {
	ctx := context.Background()
	client, cleanup := newSQLiteClient(t)
	defer cleanup()

	factory, err := sqlstore.NewRepositoryFactoryFromPersistence(client)
	if err != nil {
		t.Fatalf("new repository factory: %v", err)
	}

	_, err = factory.BalanceStore().GetRecord(ctx, "99999")
	if err == nil {
		t.Fatal("expected error for missing employee")
	}
	if got := core.ErrorStatus(err); got != 404 {
		t.Fatalf("expected 404, got %d", got)
	}
	want := "Employee with ID 99999 not found in the leave balance database"
	if got := core.ErrorMessage(err); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestBalanceStore_UpsertRejectsNonNumericID(t *testing.T) {
	ctx := context.Background()
	client, cleanup := newSQLiteClient(t)
	defer cleanup()

	factory, err := sqlstore.NewRepositoryFactoryFromPersistence(client)
	if err != nil {
		t.Fatalf("new repository factory: %v", err)
	}

	if err := factory.BalanceStore().Upsert(ctx, "12a", nil); err == nil {
		t.Fatal("expected error for non numeric employee id")
	}
}

func TestBalanceStore_ProbeTable(t *testing.T) {
	ctx := context.Background()
	client, cleanup := newSQLiteClient(t)
	defer cleanup()

	factory, err := sqlstore.NewRepositoryFactoryFromPersistence(client)
	if err != nil {
		t.Fatalf("new repository factory: %v", err)
	}

	if err := factory.BalanceStore().ProbeTable(ctx, 5); err != nil {
		t.Fatalf("probe table: %v", err)
	}
}
