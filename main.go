package main

import "kustommania/cmd"

func main() {
	cmd.Execute()
}
