//go:build !(js && wasm)

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "memeforge-wasm runs in the browser, build it with GOOS=js GOARCH=wasm or run go generate")
	os.Exit(1)
}
