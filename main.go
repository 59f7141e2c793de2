package main

import "github.com/alexiusacademia/gostiff/cmd"

func main() {
	cmd.Execute()
}
