package main

import "cleanup-backend/cmd"

func main() {
	cmd.Run()
}
