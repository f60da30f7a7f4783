package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"formsaathi/internal/cache"
	"formsaathi/internal/db"
	"formsaathi/internal/gemini"
	"formsaathi/internal/handlers"
	"formsaathi/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	db.Init()
	cache.Init()

	ai, err := gemini.NewClient()
	if err != nil {
		log.Fatal("gemini client init failed: ", err)
	}
	handlers.Init(ai)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Println("(SUCCESS): formsaathi listening on :" + port)
	if err := http.ListenAndServe(":"+port, router.RegisterRouter()); err != nil {
		log.Fatal("server failed: ", err)
	}
}
