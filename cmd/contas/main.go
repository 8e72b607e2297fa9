package main

import "contas/internal/cli"

func main() {
	cli.Execute()
}
