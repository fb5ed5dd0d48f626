package main

import "github.com/pocketarcade/pocketarcade/internal/cli"

func main() {
	cli.Execute()
}
