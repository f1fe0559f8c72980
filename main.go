package main

import "github.com/KaramelBytes/edutrend-cli/cmd"

func main() {
	cmd.Execute()
}
