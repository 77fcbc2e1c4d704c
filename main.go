package main

import "github.com/reynoldscem/terminal-pomodoro/cmd"

func main() {
	cmd.Execute()
}
