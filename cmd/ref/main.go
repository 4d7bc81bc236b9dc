package main

import (
	"flag"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	log "github.com/sirupsen/logrus"

	"github.com/submersibletoaster/mosaic/match"
	"github.com/submersibletoaster/mosaic/palette"
)

var samples = flag.Int("samples", 4096, "Random colours to check against the ranked query")
var verbose = flag.Bool("v", false, "Verbose logging")

func main() {
	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	all := palette.All()
	fmt.Printf("%d palette colours\n", len(all))
	for _, c := range all {
		fmt.Printf("%-7s %s\tL=%7.3f a=%8.3f b=%8.3f\n", c.Title, c.Hex, c.Lab.L, c.Lab.A, c.Lab.B)
	}

	perfect := 0
	edge := 0
	for _, c := range all {
		r := match.Query(int(c.RGB.R), int(c.RGB.G), int(c.RGB.B))
		if r[0].Color.Name == c.Name && r[0].Score == 0 {
			perfect++
			continue
		}
		edge++
		fmt.Printf("'%s'\t", c.Name)
		for _, v := range r[:3] {
			fmt.Printf("%.5f,'%s'\t", v.Score, v.Color.Name)
		}
		fmt.Println()
	}
	log.Infof("Perfect 1st match %d , edge cases %d", perfect, edge)

	fmt.Println("\nPairwise Lab distance")
	fmt.Printf("%-7s", "")
	for _, c := range all {
		fmt.Printf("%8s", c.Name)
	}
	fmt.Println()
	for _, a := range all {
		fmt.Printf("%-7s", a.Name)
		for _, b := range all {
			fmt.Printf("%8.2f", a.Lab.Distance(b.Lab))
		}
		fmt.Println()
	}

	disagree := 0
	for i := 0; i < *samples; i++ {
		c := colorful.FastHappyColor()
		r, g, b := c.RGB255()
		if match.Closest(int(r), int(g), int(b)).Color.Name != match.Query(int(r), int(g), int(b))[0].Color.Name {
			disagree++
			log.Debugf("closest and query disagree on %s", c.Hex())
		}
	}
	log.Infof("Closest/Query disagreements over %d random colours: %d", *samples, disagree)
}
