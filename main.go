package main

import "journal-locations/cmd"

func main() {
	cmd.Execute()
}
