package main

import (
	"github.com/shouni/go-top-words/cmd"
)

func main() {
	cmd.Execute()
}
