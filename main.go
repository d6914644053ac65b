package main

import "video-to-audio/cmd"

func main() {
	cmd.Execute()
}
