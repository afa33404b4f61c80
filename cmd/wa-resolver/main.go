package main

import "wa-resolver/internal/cli"

func main() {
	cli.Execute()
}
