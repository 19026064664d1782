package main

import "github.com/Giulio2002/vortexhash/cmd/vortexsum/commands"

func main() {
	commands.Execute()
}
