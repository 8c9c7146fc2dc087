package main

import (
	"os"

	"github.com/credage/credage/cmd/credage/commands"
	"github.com/credage/credage/internal/utils/logger"
)

func main() {
	code := commands.Execute()
	_ = logger.Sync()
	os.Exit(code)
}
