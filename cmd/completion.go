package cmd

import (
	"github.com/etnz/folio/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the pf command line for shell completion.
func Completion() *complete.Command {
	files := predict.Files("*")
	topics, _ := docs.GetAllTopics()

	return &complete.Command{
		Sub: map[string]*complete.Command{
			"new": {
				Flags: map[string]complete.Predictor{"name": predict.Something, "force": predict.Nothing},
				Args:  files,
			},
			"info": {
				Flags: map[string]complete.Predictor{"full": predict.Nothing},
				Args:  files,
			},
			"list": {Args: predict.Dirs("*")},
			"convert": {
				Flags: map[string]complete.Predictor{"out": files},
				Args:  files,
			},
			"rename": {
				Flags: map[string]complete.Predictor{"name": predict.Something},
				Args:  files,
			},
			"verify": {Args: files},
			"query": {
				Flags: map[string]complete.Predictor{"path": predict.Set{"$", "$.portfolios[*].name", "$.securities[*].isin", "$.fxData.rates"}},
				Args:  files,
			},
			"topic": {Args: predict.Set(topics)},
		},
	}
}
