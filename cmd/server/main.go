// Package main is the petclinic binary: the HTTP server and the hearing demo.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
