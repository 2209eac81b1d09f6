/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/spaddlewit/DotSpatial/cmd/dbfrec/cmd"

func main() {
	cmd.Execute()
}
