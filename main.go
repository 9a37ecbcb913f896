package main

import (
	"garage-api/core/logger"
	"garage-api/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
