package main

import "github.com/johnquangdev/meeting-notes/cmd/meetingctl/cmd"

func main() {
	cmd.Execute()
}
