// Command server runs the lookup pipeline behind a local HTTP listener
// with a SQL-backed store. It exists for development and smoke testing;
// the deployed surface is the lambda command.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/uptrace/bun"

	leavelookup "github.com/goliatone/go-leave-lookup"
	"github.com/goliatone/go-leave-lookup/core"
	"github.com/goliatone/go-leave-lookup/migrations"
	sqlstore "github.com/goliatone/go-leave-lookup/store/sql"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	driver := flag.String("driver", "sqlite", "sql driver: sqlite|postgres")
	dsn := flag.String("dsn", "file:leave-lookup.db?cache=shared&_foreign_keys=on", "database dsn")
	seed := flag.String("seed", "", "seed rows as empID=balance pairs, comma separated")
	flag.Parse()

	_, logger := glog.Resolve("leave-lookup", nil, nil)
	ctx := context.Background()

	db, err := sqlstore.OpenDB(*driver, *dsn)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := applyMigrations(ctx, db, *driver); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	factory, err := sqlstore.NewRepositoryFactoryFromDB(db)
	if err != nil {
		log.Fatalf("build repository factory: %v", err)
	}
	store := factory.BalanceStore()

	if err := seedRows(ctx, store, *seed); err != nil {
		log.Fatalf("seed rows: %v", err)
	}

	cfg := core.Config{
		Store: core.StoreConfig{
			Driver: *driver,
			DSN:    *dsn,
		},
	}
	service, err := core.NewService(cfg,
		core.WithRecordStore(store),
		core.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("build lookup service: %v", err)
	}

	facade, err := leavelookup.NewFacade(service)
	if err != nil {
		log.Fatalf("build facade: %v", err)
	}
	handler, err := leavelookup.NewHandler(facade, leavelookup.WithHandlerLogger(logger))
	if err != nil {
		log.Fatalf("build handler: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/leave-balance", lookupEndpoint(handler))

	server := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("listening", "addr", *addr, "driver", *driver)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("serve: %v", err)
	}
}

// lookupEndpoint feeds the request through the same handler the lambda
// surface uses. GET passes empID as a top-level field; POST forwards the
// body as the raw invocation event.
func lookupEndpoint(handler *leavelookup.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var raw json.RawMessage
		switch r.Method {
		case http.MethodGet:
			encoded, err := json.Marshal(map[string]any{
				"empID": r.URL.Query().Get("empID"),
			})
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			raw = encoded
		case http.MethodPost:
			body, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			raw = body
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		response, _ := handler.Handle(r.Context(), raw)
		proxy, ok := response.(events.APIGatewayProxyResponse)
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(response)
			return
		}

		for name, value := range proxy.Headers {
			w.Header().Set(name, value)
		}
		w.WriteHeader(proxy.StatusCode)
		_, _ = io.WriteString(w, proxy.Body)
	}
}

func applyMigrations(ctx context.Context, db *bun.DB, driver string) error {
	filesystems, err := migrations.Filesystems()
	if err != nil {
		return err
	}

	dialect := migrations.DialectSQLite
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(driver)), "p") {
		dialect = migrations.DialectPostgres
	}

	for _, spec := range filesystems {
		if spec.Dialect != dialect {
			continue
		}
		ups, err := sortedUpMigrations(spec.FS)
		if err != nil {
			return err
		}
		for _, name := range ups {
			content, err := fs.ReadFile(spec.FS, name)
			if err != nil {
				return err
			}
			if _, err := db.ExecContext(ctx, string(content)); err != nil {
				return fmt.Errorf("apply %s: %w", name, err)
			}
		}
	}
	return nil
}

func seedRows(ctx context.Context, store *sqlstore.BalanceStore, seed string) error {
	seed = strings.TrimSpace(seed)
	if seed == "" {
		return nil
	}
	for _, pair := range strings.Split(seed, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid seed pair %q", pair)
		}
		employeeID := strings.TrimSpace(parts[0])
		balance := strings.TrimSpace(parts[1])
		if err := store.Upsert(ctx, employeeID, map[string]core.Attribute{
			"balance": core.NumberAttribute(balance),
		}); err != nil {
			return err
		}
	}
	return nil
}

func sortedUpMigrations(fsys fs.FS) ([]string, error) {
	matches, err := fs.Glob(fsys, "*.up.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}
