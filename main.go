package main

import "github.com/edyy78/uireplay/cmd"

func main() {
	cmd.Execute()
}
