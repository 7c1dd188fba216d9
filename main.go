package main

import "github.com/bitdiag/cmd"

func main() {
	cmd.Execute()
}
