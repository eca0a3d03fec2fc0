// Package main is the advisor command line: it plays the part of the web
// pages, driving the chat dispatcher, the catalog loaders and the prediction
// forms against a configured backend.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
