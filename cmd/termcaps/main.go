package main

import (
	"fmt"

	"github.com/termviz/termviz"
	"github.com/termviz/termviz/pkg/csi"
)

func main() {
	fmt.Println("=== Terminal Capability Report ===")
	fmt.Println()

	caps := termviz.NewDetector().Capabilities()

	fmt.Println("Environment:")
	fmt.Printf("  TERM: %s\n", caps.TermName)
	fmt.Printf("  TTY: %v\n", caps.IsTTY)
	fmt.Printf("  CI: %v\n", caps.IsCI)
	fmt.Println()

	fmt.Println("Capabilities:")
	fmt.Printf("  Colors: %s\n", caps.Colors)
	fmt.Printf("  Graphics: %s\n", caps.Graphics)
	fmt.Printf("  Unicode: %v\n", caps.Unicode)
	fmt.Printf("  Braille: %v\n", caps.Braille)
	fmt.Printf("  Size: %dx%d\n", caps.Width, caps.Height)
	fmt.Println()

	selected := termviz.SelectRenderer(termviz.SelectConfig{}, caps)
	fmt.Printf("Selected renderer: %s\n", selected)
	fmt.Println()

	fmt.Println("Device queries (best effort):")
	if attrs, ok := csi.PrimaryDeviceAttributes(); ok {
		fmt.Printf("  DA1: %v\n", attrs)
	} else {
		fmt.Println("  DA1: no response")
	}
	if w, h, ok := csi.CellSize(); ok {
		fmt.Printf("  Cell size: %dx%d px\n", w, h)
	} else {
		fmt.Println("  Cell size: no response")
	}
}
