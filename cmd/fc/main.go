package main

import "fightclub/cmd/fc/root"

func main() {
	root.Execute()
}
