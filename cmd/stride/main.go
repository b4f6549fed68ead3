// Package main provides the Stride CLI.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/stride-hpc/stride"
	"github.com/stride-hpc/stride/backend/device"
	"github.com/stride-hpc/stride/backend/simd"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("Stride %s\n", stride.Version)
			return
		case "info":
			printInfo()
			return
		}
	}

	fmt.Println("Stride - Policy-Driven Parallel Iteration for Go")
	fmt.Printf("Version: %s\n\n", stride.Version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  info       Show detected backends and CPU features")
}

func printInfo() {
	fmt.Printf("Stride %s\n\n", stride.Version)
	fmt.Printf("CPUs: %d\n", runtime.NumCPU())

	features := simd.Features()
	if len(features) == 0 {
		fmt.Println("Vector features: none detected")
	} else {
		fmt.Print("Vector features:")
		for _, f := range features {
			fmt.Printf(" %s", f)
		}
		fmt.Println()
	}
	fmt.Printf("SIMD lane width: %d\n", simd.New().LaneWidth())

	fmt.Println("\nBackends:")
	fmt.Println("  sequential  available")
	fmt.Println("  simd        available")
	fmt.Println("  pool        available")
	fmt.Println("  task        available")
	if device.IsAvailable() {
		eng, err := device.New()
		if err == nil {
			fmt.Printf("  device      available (%s)\n", eng.AdapterName())
			eng.Release()
		} else {
			fmt.Printf("  device      unavailable (%v)\n", err)
		}
	} else {
		fmt.Println("  device      unavailable (no WebGPU adapter)")
	}
}
