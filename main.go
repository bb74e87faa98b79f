package main

import "github.com/KaramelBytes/tablekit-cli/cmd"

func main() {
	cmd.Execute()
}
