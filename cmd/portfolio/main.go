package main

import (
	"fmt"
	"os"

	"stock_portfolio/cmd/portfolio/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", cmd.Message(err))
		os.Exit(1)
	}
}
