package main

import (
	"github.com/KungRaseri/forgecraft/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
