package main

import "github.com/jcelerier/faust/cmd"

func main() {
	cmd.Execute()
}
