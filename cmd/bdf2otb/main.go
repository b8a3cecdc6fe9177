/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// bdf2otb compiles a BDF bitmap font into an OpenType bitmap font (.otb).
//
// Usage:
//
//	bdf2otb [flags] input.bdf
//	bdf2otb -builtin [flags]
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"golang.org/x/image/font/basicfont"

	"github.com/unidoc/otbfont/bmfont"
	"github.com/unidoc/otbfont/common"
	"github.com/unidoc/otbfont/otb"
)

const usage = `Usage: bdf2otb [flags] input.bdf
       bdf2otb -builtin [flags]

Compiles a BDF bitmap font into an sfnt font with embedded bitmaps only.

Flags:
`

func main() {
	initDisplay()

	params := otb.DefaultParams()
	output := flag.String("o", "", "output file (default: input file with .otb extension)")
	flag.IntVar(&params.EmSize, "e", params.EmSize, "units per em (64..16384)")
	flag.IntVar(&params.DirHint, "d", params.DirHint, "font direction hint (-2..2)")
	flag.IntVar(&params.LineGap, "g", params.LineGap, "line gap in em units")
	flag.IntVar(&params.LowPPEM, "l", params.LowPPEM, "lowest recommended ppem (0: cell height)")
	flag.StringVar(&params.Encoding, "c", params.Encoding, "character set of textual font properties (IANA name)")
	flag.IntVar(&params.WinLanguage, "w", params.WinLanguage, "Windows language ID of the name records")
	flag.BoolVar(&params.XMaxExtent, "x", params.XMaxExtent, "write hhea.xMaxExtent")
	flag.BoolVar(&params.SingleLoca, "s", params.SingleLoca, "write a single entry loca table")
	flag.BoolVar(&params.PostNames, "p", params.PostNames, "write glyph names (post format 2.0)")
	builtin := flag.Bool("builtin", false, "compile the built-in 7x13 face instead of a BDF file")
	check := flag.Bool("check", false, "validate the compiled font")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *verbose {
		common.SetLogger(common.NewConsoleLogger(common.LogLevelDebug))
	} else {
		common.SetLogger(common.NewConsoleLogger(common.LogLevelError))
	}

	var inPath string
	switch {
	case *builtin && flag.NArg() == 0:
	case !*builtin && flag.NArg() == 1:
		inPath = flag.Arg(0)
	default:
		flag.Usage()
		os.Exit(2)
	}

	outPath := *output
	if outPath == "" {
		outPath = defaultOutput(inPath)
	}

	now := time.Now().UTC()
	params.Created = now
	params.Modified = now

	if err := run(inPath, outPath, params, *check); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " INFO ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// defaultOutput returns `inPath` with its extension replaced by .otb.
func defaultOutput(inPath string) string {
	if inPath == "" {
		return "Face7x13.otb"
	}
	return strings.TrimSuffix(inPath, filepath.Ext(inPath)) + ".otb"
}

func run(inPath, outPath string, params otb.Params, check bool) error {
	var f *bmfont.Font
	if inPath == "" {
		f = bmfont.FromBasicFace(basicfont.Face7x13, "Face7x13")
	} else {
		var err error
		f, err = bmfont.LoadBDF(inPath)
		if err != nil {
			return err
		}
	}
	pterm.Info.Printf("%s: %d chars, cell %dx%d\n", f.Family(), len(f.Chars), f.Width, f.Height)

	data, err := otb.Compile(f, params)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	if check {
		if err := otb.Validate(data); err != nil {
			return fmt.Errorf("validate: %w", err)
		}
		pterm.Success.Println("Checksums and table layout valid")
	}

	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return err
	}
	pterm.Success.Printf("Wrote %s (%d bytes)\n", outPath, len(data))
	return nil
}
