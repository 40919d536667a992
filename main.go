package main

import (
	_ "go.uber.org/automaxprocs"

	"github.com/wagnerlima/glyco-studio/cmd"
)

func main() {
	cmd.Execute()
}
