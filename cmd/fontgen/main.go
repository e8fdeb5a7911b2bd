// Command fontgen compiles a text corpus into a packed multibyte font
// asset: a codepage table mapping each character to a two-byte runtime
// code, and a binary payload of sub-byte packed grayscale glyphs at
// every configured size.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/romekit/fontgen/codepage"
	"github.com/romekit/fontgen/patch"
	"github.com/romekit/fontgen/pixel"
	"github.com/romekit/fontgen/raster"
	"github.com/romekit/fontgen/sheet"
	"github.com/romekit/fontgen/stream"
)

const usageString = `Text corpus to packed multibyte font compiler.

Usage: %s [flags] <textfile>

Flag defaults may also be set in a .env file or the environment as
FONTGEN_FONT, FONTGEN_SIZES and FONTGEN_BITS.

`

var (
	flags = flag.NewFlagSet("fontgen", flag.ExitOnError)

	bits     = flags.Int("bits", 0, "bits per pixel (1, 2 or 4)")
	output   = flags.String("o", "rome-v2.555", "output payload file")
	fontfile = flags.String("font", "", "TrueType font file (built-in fixed face if empty)")
	sizes    = flags.String("sizes", "", "comma separated render:dim size pairs")
	trans    = flags.String("trans", "", "supplementary translation text file")
	mapfile  = flags.String("map", "", "codepage table output file (default <output>.map)")
	splice   = flags.String("splice", "", "existing source file to splice the table into")
	array    = flags.String("array", "codepage_to_utf8", "name of the table array")
	countdef = flags.String("count", "IMAGE_FONT_MULTIBYTE_SIMP_CHINESE_MAX_CHARS",
		"symbolic constant holding the table size")
	header  = flags.String("header", "", "header file whose count constant is rewritten")
	preview = flags.String("preview", "", "write per-size contact sheet GIFs with this prefix")

	textfile string
)

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "fontgen")
	flags.PrintDefaults()
}

func main() {
	log.Default().SetFlags(0)
	godotenv.Load()

	flags.Usage = usage
	flags.Parse(os.Args[1:])

	if flags.NArg() != 1 {
		flags.Usage()
		os.Exit(1)
	}
	textfile = flags.Arg(0)
	applyEnvDefaults()

	depth, err := pixel.ParseDepth(*bits)
	if err != nil {
		log.Fatalln(err)
	}

	// Read the corpus and the optional translation supplement. Any
	// read failure aborts before outputs are written.
	corpus := must(os.ReadFile(textfile))
	if *trans != "" {
		corpus = append(corpus, must(os.ReadFile(*trans))...)
	}

	table, err := codepage.Build(string(corpus))
	if err != nil {
		log.Fatalln(err)
	}

	sizeList := raster.DefaultSizes
	if *sizes != "" {
		sizeList = must(raster.ParseSizes(*sizes))
	}

	var renderer *raster.Renderer
	if *fontfile == "" {
		renderer = raster.Fallback()
	} else if renderer, err = raster.Load(*fontfile); err != nil {
		log.Printf("Warning: %v. Falling back to %q.", err, raster.Fallback().Name())
		renderer = raster.Fallback()
	}

	// Stage all source patches before writing anything, so a missing
	// array or constant fails the run while the old outputs are still
	// intact. The payload write itself is not rolled back if a later
	// Commit fails.
	var patches []*patch.File
	if *splice != "" {
		f := must(patch.Open(*splice))
		if err := f.Array(*array, table.AppendBody(nil, "    ")); err != nil {
			log.Fatalln(err)
		}
		patches = append(patches, f)
	}
	if *header != "" {
		f := must(patch.Open(*header))
		if err := f.Constant(*countdef, table.Len()); err != nil {
			log.Fatalln(err)
		}
		patches = append(patches, f)
	}

	asm := &stream.Assembler{
		Rasterizer: renderer,
		Sizes:      sizeList,
		Depth:      depth,
		Warn:       log.Default(),
	}
	results, err := asm.WriteFile(*output, table.Glyphs())
	if err != nil {
		log.Fatalln(err)
	}

	if *splice == "" {
		name := *mapfile
		if name == "" {
			name = *output + ".map"
		}
		writeMap(name, table)
	}
	for _, f := range patches {
		if err := f.Commit(); err != nil {
			log.Fatalln(err)
		}
	}

	if *preview != "" {
		for _, sz := range sizeList {
			writePreview(fmt.Sprintf("%s-%d.gif", *preview, sz.Points),
				renderer, table.Glyphs(), sz)
		}
	}

	fmt.Printf("%d characters mapped, font %q\n", table.Len(), renderer.Name())
	for _, res := range results {
		line := fmt.Sprintf("size %2d: %d glyphs, %d bytes",
			res.Size.Points, res.Glyphs, res.Bytes)
		if res.Skipped > 0 {
			line += fmt.Sprintf(" (%d skipped)", res.Skipped)
		}
		fmt.Println(line)
	}
	fmt.Printf("payload written to %s\n", *output)
}

func writeMap(path string, table *codepage.Table) {
	f := must(os.Create(path))
	defer f.Close()
	if err := table.WriteDecl(f, *array, *countdef); err != nil {
		log.Fatalln(err)
	}
}

func writePreview(path string, r *raster.Renderer, glyphs []rune, sz raster.Size) {
	f := must(os.Create(path))
	defer f.Close()
	if err := sheet.Write(f, r, glyphs, sz); err != nil {
		log.Fatalln(err)
	}
}

// applyEnvDefaults fills flags the command line left unset from the
// environment, after godotenv merged the .env file into it.
func applyEnvDefaults() {
	set := make(map[string]bool)
	flags.Visit(func(f *flag.Flag) { set[f.Name] = true })
	for name, key := range map[string]string{
		"font":  "FONTGEN_FONT",
		"sizes": "FONTGEN_SIZES",
		"bits":  "FONTGEN_BITS",
	} {
		if v := os.Getenv(key); v != "" && !set[name] {
			flags.Set(name, strings.TrimSpace(v))
		}
	}
}

func must[T any](ret T, err error) T {
	if err != nil {
		log.Fatalln(err)
	}
	return ret
}
