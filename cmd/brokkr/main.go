package main

import (
	"github.com/ssargent/brokkr/cmd/brokkr/cmd"
)

func main() {
	cmd.Execute()
}
