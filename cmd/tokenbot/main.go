package main

import (
	"fmt"
	"log"

	"github.com/hopevpn/tokenbot/bot"
	"github.com/hopevpn/tokenbot/core/bootstrap"
	corecmd "github.com/hopevpn/tokenbot/core/cmd"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return bot.LoadConfig(path)
		},
		Bootstrap: func(cfg corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			appCfg, ok := cfg.(*bot.Config)
			if !ok {
				return nil, fmt.Errorf("unexpected config type %T", cfg)
			}
			if err := bootstrap.Run(bootstrap.Options{Config: appCfg.CoreConfig()}); err != nil {
				return nil, err
			}
			return bot.New(appCfg), nil
		},
	})
	if err != nil {
		log.Fatalf("tokenbot: %v", err)
	}
}
