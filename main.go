package main

import "github.com/KaramelBytes/worldpop-cli/cmd"

func main() {
	cmd.Execute()
}
