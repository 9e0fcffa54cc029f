package main

import "github.com/Norgate-AV/daemonic/cmd"

func main() {
	cmd.Execute()
}
