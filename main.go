package main

import (
	"fmt"

	"bitwise74/safeglow-api/app"
	"bitwise74/safeglow-api/config"
	"bitwise74/safeglow-api/db"
	"bitwise74/safeglow-api/internal/store"
	"bitwise74/safeglow-api/pkg/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	err := config.Setup()
	if err != nil {
		panic(err)
	}

	cfg := config.Load()

	if err := util.SetupLogger(cfg.LogLevel, cfg.Production()); err != nil {
		panic(err)
	}

	cfg.LogWarnings(zap.L())

	database, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		panic(err)
	}

	deps, err := app.NewDeps(cfg, store.NewGormStore(database))
	if err != nil {
		panic(err)
	}

	router, err := app.NewRouter(deps)
	if err != nil {
		panic(err)
	}

	zap.L().Info("Server starting", zap.Int("port", cfg.Port), zap.String("env", cfg.Env))

	err = router.Run(fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		panic(err)
	}
}
