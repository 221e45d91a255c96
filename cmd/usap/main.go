// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"

	"github.com/ezrec/usap/cpu"
	"github.com/ezrec/usap/emulator"
	"github.com/ezrec/usap/io"
)

func main() {
	var compile string
	var image string
	var output string
	var save bool
	var signed bool
	var fixed bool
	var ticks int
	var verbose bool

	flag.StringVar(&compile, "c", "", ".s file to assemble")
	flag.StringVar(&image, "m", "", ".hex memory image to load")
	flag.StringVar(&output, "o", "-", "Output peripheral destination")
	flag.BoolVar(&save, "s", false, "Save assembled image to output, do not execute")
	flag.BoolVar(&signed, "n", false, "Render output values as signed (two's complement)")
	flag.BoolVar(&fixed, "f", false, "Use the fixed-length (3-step) microprogram")
	flag.IntVar(&ticks, "t", emulator.DEFAULT_TICK_LIMIT, "Tick limit")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	if fixed {
		err := emu.Cpu.SetMicrocode(cpu.FixedMicroprogram())
		if err != nil {
			log.Fatalf("%v: %v", os.Args[0], err)
		}
	}

	// Assemble a new program.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for attr, val := range emu.Defines() {
			asm.Predefine(attr, val)
		}
		emu.Program, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	// Load a raw memory image.
	if len(image) != 0 {
		inf, err := os.Open(image)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
		defer inf.Close()

		emu.Image, err = io.LoadImage(inf)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
	}

	ouf := os.Stdout
	if output != "-" {
		var err error
		ouf, err = os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
	}

	if save {
		binary := emu.Image
		if binary == nil {
			binary = emu.Program.Binary()
		}
		err := io.SaveImage(ouf, binary)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		return
	}

	emu.Cpu.Display = &io.Printer{Output: ouf, Signed: signed}

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	err = emu.Run(ticks)
	if err != nil {
		log.Fatal(err)
	}
}
