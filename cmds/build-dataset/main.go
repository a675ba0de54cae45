package main

import (
	"fmt"
	"log"

	"github.com/alexflint/go-arg"
	"github.com/dustin/go-humanize"
	"github.com/montanaflynn/stats"

	"github.com/orderdesk/delayrisk/traindata"
)

func fail(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	args := struct {
		Input      string
		Output     string
		MaxSamples int
		Seed       int64
	}{
		Output:     "delay_risk_dataset.json",
		MaxSamples: traindata.MaxRealSamples,
		Seed:       traindata.DefaultSeed,
	}
	arg.MustParse(&args)

	dir := args.Input
	if dir == "" {
		var ok bool
		dir, ok = traindata.FindOlistDir(traindata.DefaultOlistDirs)
		if !ok {
			log.Printf("olist export not found, tried %v", traindata.DefaultOlistDirs)
			log.Fatalf("pass --input or place %s and %s under olist_data/",
				traindata.OrdersCSV, traindata.ItemsCSV)
		}
	}

	fmt.Printf("Loading Olist data from: %s\n", dir)
	samples, err := traindata.TransformOlist(dir, traindata.TransformOptions{
		MaxSamples: args.MaxSamples,
		Seed:       args.Seed,
	})
	fail(err)

	if len(samples) < traindata.MinRealSamples {
		fmt.Printf("WARNING: only %d usable orders in the export, padding to %d with synthetic samples\n",
			len(samples), traindata.MinTrainingSamples)
		samples = traindata.AugmentIfSparse(samples, traindata.MinRealSamples, traindata.MinTrainingSamples, args.Seed)
	}

	var delayed int
	hours := make([]float64, 0, len(samples))
	for _, s := range samples {
		if s.Delayed == 1 {
			delayed++
		}
		hours = append(hours, s.TimeHours)
	}
	fmt.Printf("Transformed %s samples (%s delayed, %s on-time)\n",
		humanize.Comma(int64(len(samples))),
		humanize.Comma(int64(delayed)),
		humanize.Comma(int64(len(samples)-delayed)))

	mean, err := stats.Mean(hours)
	fail(err)
	fmt.Printf("Delivery window hours: mean %.2f", mean)
	for _, p := range []float64{50, 90, 99} {
		pv, err := stats.Percentile(hours, p)
		fail(err)
		fmt.Printf(", p%.0f %.2f", p, pv)
	}
	fmt.Println()

	fail(traindata.Save(args.Output, samples))
	fmt.Printf("Saved %s records to %s\n", humanize.Comma(int64(len(samples))), args.Output)
}
