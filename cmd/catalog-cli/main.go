package main

import (
	"context"

	"gamecatalog/cmd/catalog-cli/commands"
	"gamecatalog/lib/util/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext(context.Background()))
}
