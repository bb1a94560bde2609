package main

import "github.com/marshallshelly/snapcart/cmd/snapcart/commands"

func main() {
	commands.Execute()
}
