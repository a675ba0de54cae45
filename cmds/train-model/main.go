package main

import (
	"fmt"
	"log"

	"github.com/alexflint/go-arg"
	"github.com/dustin/go-humanize"

	"github.com/orderdesk/delayrisk/delaymodel"
	"github.com/orderdesk/delayrisk/traindata"
)

func fail(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	args := struct {
		Dataset  string
		Output   string
		MaxIter  int
		Seed     int64
		Fallback bool
	}{
		Dataset: "delay_risk_dataset.json",
		Output:  "delay_model.json",
		MaxIter: delaymodel.DefaultConfig().MaxIter,
		Seed:    traindata.DefaultSeed,
	}
	arg.MustParse(&args)

	cfg := delaymodel.DefaultConfig()
	cfg.MaxIter = args.MaxIter
	cfg.Seed = args.Seed
	cfg.Fallback = args.Fallback

	samples, err := traindata.LoadOrGenerate(args.Dataset, traindata.MinTrainingSamples, traindata.MinTrainingSamples, cfg.Seed)
	fail(err)
	fmt.Printf("Training on %s samples from %s\n", humanize.Comma(int64(len(samples))), args.Dataset)

	trainer := delaymodel.Select(cfg)
	model, err := trainer.Train(samples)
	if err != nil {
		log.Printf("%s training failed (%v), degrading to the fallback", trainer.Name(), err)
		trainer = delaymodel.FallbackTrainer{}
		model, err = trainer.Train(samples)
		fail(err)
	}
	fail(model.Validate())

	fmt.Printf("Trained with %s\n", trainer.Name())
	report(model, samples)

	fail(model.Save(args.Output))
	fmt.Printf("Model saved to %s\n", args.Output)
}

func report(m delaymodel.Model, samples []traindata.Sample) {
	var tp, tn, fp, fn int
	for _, s := range samples {
		pred := 0
		if m.PredictProba(s.Features()) > 0.5 {
			pred = 1
		}
		switch {
		case pred == 1 && s.Delayed == 1:
			tp++
		case pred == 0 && s.Delayed == 0:
			tn++
		case pred == 1:
			fp++
		default:
			fn++
		}
	}
	total := len(samples)
	fmt.Printf("Training accuracy %.3f (tp %d, tn %d, fp %d, fn %d)\n",
		float64(tp+tn)/float64(total), tp, tn, fp, fn)
}
