package main

import (
	"fmt"

	"gitlab.com/dirk.krummacker/contact-book/internal/api"
	"gitlab.com/dirk.krummacker/contact-book/internal/config"
	"gitlab.com/dirk.krummacker/contact-book/internal/logger"
	"gitlab.com/dirk.krummacker/contact-book/internal/service"
	"gitlab.com/dirk.krummacker/contact-book/internal/store"
)

// Usage example on the command line:
// > PORT=8080 DBHOST=localhost:3306 DBUSER=dirk DBPWD=bullo92 GIN_MODE=release GIN_LOGGING=off go run main.go
func main() {
	log := logger.NewLogger()
	cfg := config.Load()

	sqlDB, err := store.CreateDatabase(cfg)
	if err != nil {
		log.Fatalw("could not open database", "error", err)
	}
	st, err := store.New(sqlDB)
	if err != nil {
		log.Fatalw("could not prepare statements", "error", err)
	}

	svc := service.New(st)
	router := api.New(svc, log).SetupHttpRouter(cfg.GinLogging)

	log.Infof("contact book service listening on port %d", cfg.Port)
	if err := router.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatalw("server stopped", "error", err)
	}
}
