// Package main provides the gnbryo CLI application.
// gnbryo harvests bryophyte species data from GBIF and IUCN Red List.
package main

import "github.com/gnames/gnbryo/cmd"

func main() {
	cmd.Execute()
}
