package main

import "github.com/schemix-inc/schemix-engine/cmd/schemix/cmd"

func main() {
	cmd.Execute()
}
