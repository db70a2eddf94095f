package main

import (
	"github.com/LENAX/hotstar-scraper/pkg/cli/cmd"
)

func main() {
	cmd.Execute()
}
