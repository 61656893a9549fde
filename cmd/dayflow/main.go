package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/phillip-england/dayflow/internal/dayflowcli"
)

func main() {
	if err := dayflowcli.Execute(os.Args[1:]); err != nil {
		if errors.Is(err, dayflowcli.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
			fmt.Fprintln(os.Stderr)
			dayflowcli.PrintUsage(os.Stderr)
			os.Exit(2)
		}
		log.Fatal(err)
	}
}
