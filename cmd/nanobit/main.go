package main

import "github.com/arloliu/nanobit/cmd/nanobit/cmd"

func main() {
	cmd.Execute()
}
