package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	pb "github.com/cheggaaa/pb/v3"
	"github.com/joshdk/preview"
	log "github.com/sirupsen/logrus"

	"github.com/submersibletoaster/mosaic"
	"github.com/submersibletoaster/mosaic/report"
)

var width = flag.Int("w", mosaic.DefaultUnits, "Mosaic width in cubes")
var height = flag.Int("h", mosaic.DefaultUnits, "Mosaic height in cubes")
var resampler = flag.String("resampler", string(mosaic.Lanczos), "Resize filter: lanczos, box, lanczos3, mitchell or catmullrom")
var outFile = flag.String("o", "", "Write JSON here instead of stdout")
var showANSI = flag.Bool("ansi", false, "Print the mosaic as coloured blocks on stderr")
var showPreview = flag.Bool("preview", false, "Show the face sheet as an inline terminal image")
var progress = flag.Bool("progress", false, "Show a progress bar while matching")
var verbose = flag.Bool("v", false, "Verbose logging")

func main() {
	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] image\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := run(flag.Arg(0)); err != nil {
		log.Fatal(err)
	}
}

func run(srcFile string) error {
	r, err := mosaic.ParseResampler(*resampler)
	if err != nil {
		return err
	}
	opts := mosaic.DefaultOptions()
	opts.Resampler = r
	opts.MaxUnits = 0

	var bar *pb.ProgressBar
	if *progress {
		bar = pb.StartNew(*height)
		opts.Progress = func(done, total int) {
			bar.SetTotal(int64(total))
			bar.SetCurrent(int64(done))
		}
	}

	srcIo, err := os.Open(srcFile)
	if err != nil {
		return err
	}
	defer srcIo.Close()
	srcImg, err := mosaic.Decode(srcIo)
	if err != nil {
		return fmt.Errorf("%s: %w", srcFile, err)
	}

	res, err := mosaic.NewGenerator(opts).Generate(srcImg, *width, *height)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return err
	}

	if *showANSI {
		report.WriteANSI(os.Stderr, res.Grid)
		report.WriteSummary(os.Stderr, res)
	}
	if *showPreview {
		preview.Image(report.SheetImage(res, report.DefaultSheetOptions()))
	}

	var out io.Writer = os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
