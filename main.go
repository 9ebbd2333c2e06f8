package main

import "github.com/Rafsan1711/sliding-puzzle-with-Solver-IDA/cmd"

func main() {
	cmd.Execute()
}
