package main

import "github.com/KaramelBytes/edastat/cmd"

func main() {
	cmd.Execute()
}
