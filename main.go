package main

import "github.com/nandana05-tech/preprocessing-data-fmcg/cmd"

func main() {
	cmd.Execute()
}
