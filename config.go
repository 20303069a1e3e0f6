package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Networked matches play to 5 by default; local and AI modes use a higher
// threshold client-side, so the value stays configurable.
const defaultWinScore = 5

type Config struct {
	Port      string
	WinScore  int
	StaticDir string
}

func MustLoadConfig() *Config {
	godotenv.Load()
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	winScore := defaultWinScore
	if raw := os.Getenv("WIN_SCORE"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			panic("WIN_SCORE must be a positive integer!")
		}
		winScore = parsed
	}
	staticDir := os.Getenv("STATIC_DIR")
	return &Config{port, winScore, staticDir}
}
