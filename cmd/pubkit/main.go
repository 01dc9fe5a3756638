package main

import "github.com/pubkit/pubkit/internal/cli"

func main() { cli.Main() }
