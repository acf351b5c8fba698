package main

import "showflix/cmd"

func main() {
	cmd.Execute()
}
