package main

import "github.com/theirongolddev/moneytree/cmd"

func main() {
	cmd.Execute()
}
