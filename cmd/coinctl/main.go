package main

import (
	"log"
	"os"

	"github.com/jessevdk/go-flags"
)

func main() {
	parser := flags.NewParser(nil, flags.Default)

	_, err := parser.AddCommand("generate",
		"generate a batch of coins",
		"The generate command draws a fresh seed for every coin, writes the encrypted batch file, "+
			"the QR codes and printable labels, and the issue parameter for the redemption contract.",
		&Generate{})
	if err != nil {
		log.Fatal(err)
	}
	_, err = parser.AddCommand("reprint",
		"reprint the labels of a batch",
		"The reprint command decrypts an existing batch file and renders its QR codes and labels again.",
		&Reprint{})
	if err != nil {
		log.Fatal(err)
	}

	if _, err := parser.Parse(); err != nil {
		os.Exit(1)
	}
}
