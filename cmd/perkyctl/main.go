package main

import (
	"github.com/perkycoffee/perkyjump/internal/cli"
)

func main() {
	cli.Execute()
}
