package main

import "github.com/Log4JExploit/rtOS/cmd"

func main() {
	cmd.Execute()
}
