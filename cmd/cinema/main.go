package main

import "cinemabooking/internal/cli"

func main() {
	cli.Execute()
}
