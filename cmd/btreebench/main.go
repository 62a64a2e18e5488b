/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/ssargent/btreering/cmd/btreebench/cmd"

func main() {
	cmd.Execute()
}
