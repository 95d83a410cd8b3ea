package main

import "planets-api/cmd"

func main() {
	cmd.Execute()
}
