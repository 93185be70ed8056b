package main

import (
	"context"
	"log"

	"github.com/paulikeo/mercadito/internal/client/api"
	"github.com/paulikeo/mercadito/internal/client/cli"
	"github.com/paulikeo/mercadito/internal/client/config"
	"github.com/paulikeo/mercadito/internal/client/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("%v", err)
	}

	sess := session.Load(cfg.SessionPath)
	app := cli.NewApp(api.New(cfg.ServerURL), sess)
	app.Run(context.Background())
}
