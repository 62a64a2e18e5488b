/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/ssargent/btreering/cmd/ringbench/cmd"

func main() {
	cmd.Execute()
}
