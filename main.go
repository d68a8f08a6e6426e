package main

import "github.com/studydesk/studydesk/cmd"

func main() {
	cmd.Execute()
}
