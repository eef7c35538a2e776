package main

import (
	"github.com/viewlens/viewlens/internal/cli"
)

func main() {
	cli.Execute()
}
