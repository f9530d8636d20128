package main

import (
	"log"

	"github.com/ptbdnr/vrp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
