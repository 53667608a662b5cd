package main

import (
	"github.com/thanhnguyen2187/mt-dti/cli"
)

func main() {
	cli.Start()
}
