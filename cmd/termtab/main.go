package main

import (
	"log"

	"github.com/MrSnakeDoc/termtab/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("❌ termtab failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ termtab stopped with an error: %v", err)
	}
}
