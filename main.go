package main

import (
	"gradinvite/core/logger"
	"gradinvite/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
