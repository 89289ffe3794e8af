/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Command-line entry point for the ILA classifier. Trains rule sets on tabular
data, classifies new tables with saved models, and converts between CSV and Excel.
*/

package main

import (
	"fmt"
	"os"

	"github.com/kleascm/ila-classifier/cmd/ila/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
