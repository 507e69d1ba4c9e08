package main

import "github.com/youzi-corp/pos-client/internal/cli"

func main() {
	cli.Execute()
}
