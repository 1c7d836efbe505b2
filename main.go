package main

import "bullposter-cli/cmd"

func main() {
	cmd.Execute()
}
