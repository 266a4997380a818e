package main

import "github.com/notargets/gondg/cmd"

func main() {
	cmd.Execute()
}
