package main

import "crosstab/cmd"

func main() {
	cmd.Execute()
}
