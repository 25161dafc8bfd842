package main

import "wiutctl/cmd"

func main() {
	cmd.Execute()
}
