package main

import "github.com/OpenTraceLab/pufest/cmd/pufest/cmd"

func main() {
	cmd.Execute()
}
