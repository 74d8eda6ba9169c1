package main

import "github.com/moyu-x/dupfind/cmd"

func main() {
	cmd.Execute()
}
