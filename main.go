package main

import "github.com/civicgrid/hr-management/cmd"

func main() {
	cmd.Execute()
}
