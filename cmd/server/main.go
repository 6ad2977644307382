package main

import (
	"log"
	"os"

	"github.com/benbeisheim/chessai-backend/internal/config"
	"github.com/benbeisheim/chessai-backend/internal/controller"
	"github.com/benbeisheim/chessai-backend/internal/model"
	"github.com/benbeisheim/chessai-backend/internal/service"
)

func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	gameManager := service.NewGameManager(model.NewHeuristicAI(cfg.AI))
	gameService := service.NewGameService(gameManager)

	app := controller.NewApp(gameService, cfg)
	log.Printf("listening on %s", cfg.Addr)
	log.Fatal(app.Listen(cfg.Addr))
}
