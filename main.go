package main

import "github.com/Poli-Reddy/insightmeet/cmd"

func main() {
	cmd.Execute()
}
