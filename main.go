package main

import "github.com/kasuboski/seriez/cmd"

func main() {
	cmd.Execute()
}
