// Package main is the entry point for the nuxtsmith CLI.
package main

import "nuxtsmith.dev/pkg/nuxtsmith/cmd"

func main() {
	cmd.Execute()
}
