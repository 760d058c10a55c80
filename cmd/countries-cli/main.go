package main

import (
	"context"

	"wbcountries-backend/cmd/countries-cli/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
