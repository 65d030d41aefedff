package main

import "github.com/monietree/teller/cmd"

func main() {
	cmd.Execute()
}
