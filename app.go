package main

import (
	"log"
	"os"

	"github.com/masmgr/changelog-go/cmd"
)

func main() {
	app := cmd.App()

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
