// Command autosize loads an HTML page, autosizes its textareas and reports
// or renders the result.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
