// Command initdb applies migrations and seeds the default admin and
// settings without starting the server. Safe to run repeatedly.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/hallgate/adminbase/internal/admin/config"
	"github.com/hallgate/adminbase/internal/admin/service"
	"github.com/hallgate/adminbase/internal/admin/store/drivers/sqlite"
	"github.com/hallgate/adminbase/pkg/slogx"
)

func main() {
	dbFile := flag.String("db", config.Env("DATABASE_FILE", "adminbase.db"), "path to the SQLite database file")
	flag.Parse()

	log := slogx.New(slogx.Config{App: "adminbase-initdb", Level: "info", Format: "text"})

	st, err := sqlite.NewStore(*dbFile)
	if err != nil {
		log.Error("open database failed", "database", *dbFile, "error", err)
		os.Exit(1)
	}
	defer st.Close()

	setup := &service.SetupService{Store: st}
	seeded, err := setup.Run(slogx.WithContext(context.Background(), log))
	if err != nil {
		log.Error("initialization failed", "error", err)
		os.Exit(1)
	}

	if seeded {
		log.Info("database initialized",
			"database", *dbFile,
			"admin_username", service.DefaultAdminUsername)
		return
	}
	log.Info("database already initialized; nothing to do", "database", *dbFile)
}
