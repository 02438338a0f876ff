package main

import "github.com/they4kman/concentration/cmd"

func main() {
	cmd.Execute()
}
