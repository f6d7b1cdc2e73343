package cmd

import (
	"flag"
	"io"

	"github.com/etnz/wealth/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors are the completions of flags with a known set of values.
var flagPredictors = map[string]complete.Predictor{
	"focus":  predict.Set{"mtd", "qtd", "ytd", "r12", "year", "custom"},
	"metric": predict.Set{"value", "count"},
	"leaves": predict.Set{"merchant", "month"},
	"sort":   predict.Set{"total", "variance"},
	"config": predict.Files("*.yaml"),
}

// Completion returns the shell completion tree of wlt: global flags, and
// the flags of each subcommand.
func Completion(global *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagsOf(global),
	}
	for _, c := range Commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: flagsOf(fs)}
		if c.Name() == "topic" {
			topics, _ := docs.GetAllTopics()
			sub.Args = predict.Set(topics)
		}
		root.Sub[c.Name()] = sub
	}
	for _, name := range []string{"help", "flags"} {
		root.Sub[name] = &complete.Command{}
	}
	return root
}

func flagsOf(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := flagPredictors[f.Name]; ok {
			flags[f.Name] = p
			return
		}
		flags[f.Name] = predict.Set{}
	})
	return flags
}
