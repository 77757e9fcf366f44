package main

import (
	"fmt"
	"os"

	"github.com/JaimeStill/backoffice/pkg/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.FormatError(err.Error()))
		os.Exit(1)
	}
}
