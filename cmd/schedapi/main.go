package main

import (
	"fmt"
	"log"

	"schedsim/internal/api"
)

func main() {
	cfg, err := api.LoadServerConfig()
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("loaded config: %+v", *cfg)

	app := api.NewApp(cfg)
	log.Fatalln(app.Listen(fmt.Sprintf(":%d", cfg.Port)))
}
