package main

import "github.com/mascanho/ruddit/cli"

func main() {
	cli.Execute()
}
