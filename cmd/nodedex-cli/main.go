package main

import "nodedex/cmd/nodedex-cli/cmd"

func main() {
	cmd.Execute()
}
