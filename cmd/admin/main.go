package main

import (
	"os"

	"github.com/joho/godotenv"

	"wrestling-admin/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	os.Exit(Execute())
}
