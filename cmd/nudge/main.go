package main

import "github.com/nudgeworks/nudge/cmd"

func main() {
	cmd.Execute()
}
