package main

import "github.com/Tiliavir/worktracker/cmd"

func main() {
	cmd.Execute()
}
