// Command lrge estimates the size of an unknown genome from a set of long
// sequencing reads (see package github.com/mbhall88/lrge for the engine).
package main

import "github.com/mbhall88/lrge/cmd/lrge/cmd"

func main() {
	cmd.Execute()
}
