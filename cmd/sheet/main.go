package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	pb "github.com/cheggaaa/pb/v3"
	log "github.com/sirupsen/logrus"

	"github.com/submersibletoaster/mosaic"
	"github.com/submersibletoaster/mosaic/report"
)

var workers = flag.Int("workers", 2, "Number of worker routines")
var width = flag.Int("w", mosaic.DefaultUnits, "Mosaic width in cubes")
var height = flag.Int("h", mosaic.DefaultUnits, "Mosaic height in cubes")
var resampler = flag.String("resampler", string(mosaic.Lanczos), "Resize filter")
var outDir = flag.String("out", ".", "Directory for generated files")
var faceSize = flag.Int("face", 12, "Face edge in pixels on the PNG sheet")
var labels = flag.Bool("labels", false, "Number the cubes on the PNG sheet")
var skipPDF = flag.Bool("nopdf", false, "Do not write PDF guides")
var verbose = flag.Bool("v", false, "Verbose logging")

// Job is one input image, numbered in command line order.
type Job struct {
	Nth  uint
	Path string
}

// SheetOut is the outcome of one Job.
type SheetOut struct {
	Nth    uint
	Path   string
	Result *mosaic.Result
	Files  []string
	Err    error
}

// SheetBuff - Sortable collection of SheetOut
// so the summary is printed in input order
type SheetBuff []SheetOut

func (s SheetBuff) Len() int {
	return len(s)
}
func (s SheetBuff) Less(i, j int) bool {
	return s[i].Nth < s[j].Nth
}
func (s SheetBuff) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

func main() {
	flag.Parse()
	if *verbose {
		log.Info("Setting verbose logging")
		log.SetLevel(log.DebugLevel)
	}
	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] image...\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	r, err := mosaic.ParseResampler(*resampler)
	if err != nil {
		log.Fatal(err)
	}
	opts := mosaic.DefaultOptions()
	opts.Resampler = r
	opts.MaxUnits = 0
	gen := mosaic.NewGenerator(opts)
	if err := gen.Validate(*width, *height); err != nil {
		log.Fatal(err)
	}
	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatal(err)
	}

	jobs := make(chan Job)
	go func() {
		for i, path := range flag.Args() {
			jobs <- Job{Nth: uint(i), Path: path}
		}
		close(jobs)
	}()

	bar := pb.StartNew(flag.NArg())
	failed := 0
	Workers(*workers, jobs, func(job Job) SheetOut {
		out := RenderOne(gen, job)
		bar.Increment()
		return out
	}, func(out SheetOut) {
		if out.Err != nil {
			failed++
			log.WithError(out.Err).Errorf("%s failed", out.Path)
			return
		}
		log.WithFields(log.Fields{
			"cubes":  out.Result.Dimensions.Total,
			"colors": len(out.Result.ColorCount),
		}).Infof("%s -> %s", out.Path, strings.Join(out.Files, ", "))
	})
	bar.Finish()

	if failed > 0 {
		log.Fatalf("%d of %d images failed", failed, flag.NArg())
	}
}

// Workers runs n copies of render over jobs and hands each result to
// emit in job order.
func Workers(n int, jobs <-chan Job, render func(Job) SheetOut, emit func(SheetOut)) {
	if n < 1 {
		n = 1
	}
	mid := make(chan SheetOut, n)
	wait := sync.WaitGroup{}
	for i := 0; i < n; i++ {
		wait.Add(1)
		go func() {
			defer wait.Done()
			for job := range jobs {
				mid <- render(job)
			}
		}()
	}
	go func() {
		wait.Wait()
		close(mid)
	}()

	nextOut := uint(0)
	buffer := make(SheetBuff, 0)
	for o := range mid {
		buffer = append(buffer, o)
		sort.Sort(buffer)

		for len(buffer) != 0 && buffer[0].Nth == nextOut {
			emit(buffer[0])
			nextOut++
			buffer = buffer[1:]
		}
	}
}

// RenderOne builds the mosaic for job and writes its JSON, PNG sheet and
// optional PDF guide next to each other in the output directory.
func RenderOne(gen *mosaic.Generator, job Job) SheetOut {
	out := SheetOut{Nth: job.Nth, Path: job.Path}

	f, err := os.Open(job.Path)
	if err != nil {
		out.Err = err
		return out
	}
	img, err := mosaic.Decode(f)
	f.Close()
	if err != nil {
		out.Err = err
		return out
	}

	res, err := gen.Generate(img, *width, *height)
	if err != nil {
		out.Err = err
		return out
	}
	out.Result = res

	base := filepath.Join(*outDir, strings.TrimSuffix(filepath.Base(job.Path), filepath.Ext(job.Path)))
	writers := []output{
		{".json", func(w *os.File) error {
			return json.NewEncoder(w).Encode(res)
		}},
		{".png", func(w *os.File) error {
			o := report.DefaultSheetOptions()
			o.FaceSize = *faceSize
			o.Labels = *labels
			return png.Encode(w, report.SheetImage(res, o))
		}},
	}
	if !*skipPDF {
		writers = append(writers, output{".pdf", func(w *os.File) error {
			return report.WritePDF(w, res, report.Settings{Width: *width, Height: *height})
		}})
	}

	for _, wr := range writers {
		name := base + wr.ext
		if err := writeFile(name, wr.write); err != nil {
			out.Err = fmt.Errorf("writing %s: %w", name, err)
			return out
		}
		out.Files = append(out.Files, name)
	}
	return out
}

type output struct {
	ext   string
	write func(*os.File) error
}

func writeFile(name string, write func(*os.File) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
