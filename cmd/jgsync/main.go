package main

import (
	"context"
	"juniorguru-sync/cmd/jgsync/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
