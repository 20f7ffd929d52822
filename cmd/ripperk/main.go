// Command ripperk trains and serves RIPPERk rule classifiers: learn
// induces a model from a labeled CSV dataset, evaluate scores a held-out
// set against a saved model, classify labels one instance from flags or
// an interactive prompt, diff compares two model text dumps, serve
// exposes a model over HTTP, and watch re-learns a model whenever its
// source dataset changes on disk.
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
