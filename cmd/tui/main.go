package main

import (
	"log"
	"os"

	"github.com/benbeisheim/chessai-backend/internal/config"
	"github.com/benbeisheim/chessai-backend/internal/model"
	"github.com/benbeisheim/chessai-backend/internal/tui"
)

func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if err := tui.Run(cfg.HumanColor, model.NewHeuristicAI(cfg.AI)); err != nil {
		log.Fatal(err)
	}
}
