// Tonal - a tonal colour palette generator
//
// Tonal extracts seed colours from wallpapers and derives light and dark
// theme palettes from them.
package main

import "github.com/jmylchreest/tonal/internal/cli"

func main() {
	cli.Execute()
}
