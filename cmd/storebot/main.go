package main

import (
	"fmt"
	"log"

	"github.com/m3rciful/storebot/core/bootstrap"
	corecmd "github.com/m3rciful/storebot/core/cmd"
	"github.com/m3rciful/storebot/store/bot"
	"github.com/m3rciful/storebot/store/catalog"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		ConfigEnvVar:      "CONFIG_PATH",
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return bot.Load(path)
		},
		Bootstrap: func(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			cfg, ok := carrier.(*bot.Config)
			if !ok {
				return nil, fmt.Errorf("unexpected config type %T", carrier)
			}

			res, err := bootstrap.Run(bootstrap.Options{
				Config:   &cfg.Core,
				Database: cfg.Database,
				Seeders:  []bootstrap.Seeder{catalog.Seeder{}},
			})
			if err != nil {
				return nil, err
			}
			return bot.New(cfg, res.DB), nil
		},
	})
	if err != nil {
		log.Fatalf("storebot: %v", err)
	}
}
