package main

import "github.com/saxenaaman628/settlement-elections/cmd"

func main() {
	cmd.Execute()
}
