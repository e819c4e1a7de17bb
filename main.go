package main

import "github.com/cuketool/cuke/cmd"

func main() {
	cmd.Execute()
}
