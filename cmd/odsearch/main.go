package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/drakos74/odsearch/infra/config"
	"github.com/drakos74/odsearch/internal/algo/search"
	"github.com/drakos74/odsearch/internal/dataset"
	"github.com/drakos74/odsearch/internal/eval"
	"github.com/drakos74/odsearch/internal/math/od"
	"github.com/drakos74/odsearch/internal/storage"
	jsonstore "github.com/drakos74/odsearch/internal/storage/file/json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {

	dataPath := flag.String("data", "", "path to the dataset file")
	format := flag.String("format", "arff", "dataset format (arff|csv)")
	timeout := flag.Duration("timeout", 0, "wall clock budget for the search")
	top := flag.Int("top", 10, "number of leaderboard rows to print")
	flag.Parse()

	if *dataPath == "" {
		log.Fatal().Msg("no dataset given, use -data")
	}

	var settings search.Settings
	config.MustLoad("search", &settings)

	var set *dataset.Set
	var err error
	switch *format {
	case "arff":
		set, err = dataset.ImportARFF(*dataPath)
	case "csv":
		set, err = dataset.ImportCSV(*dataPath)
	default:
		log.Fatal().Str("format", *format).Msg("unknown dataset format")
	}
	if err != nil {
		log.Fatal().Err(err).Str("data", *dataPath).Msg("could not import dataset")
	}

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	s := search.New(search.Default(settings.Seed), settings)
	if err := s.Register(); err != nil {
		log.Warn().Err(err).Msg("could not register metrics")
	}

	start := time.Now()
	result, best, err := s.Run(ctx, set.X, set.Y)
	if err != nil {
		log.Fatal().Err(err).Msg("search failed")
	}

	fmt.Println(result.Summary())
	result.Leaderboard(os.Stdout, *top)

	store, err := jsonstore.BlobShard("search")(storage.ResultsDir)
	if err != nil {
		log.Error().Err(err).Msg("could not create result storage, results will not be kept")
		store, _ = storage.VoidShard()(storage.ResultsDir)
	}
	if err := store.Store(storage.Key{Run: result.RunID, Label: "result"}, result); err != nil {
		log.Error().Err(err).Msg("could not persist result")
	}

	// report the refitted winner on the full dataset
	predictions, err := best.Predict(set.X)
	if err != nil {
		log.Fatal().Err(err).Msg("could not predict with best detector")
	}
	matrix, err := eval.Confusion(set.Y, predictions)
	if err != nil {
		log.Fatal().Err(err).Msg("could not evaluate best detector")
	}
	if forest, ok := best.(*od.Forest); ok {
		log.Info().
			Strs("features", set.Attributes).
			Floats64("importance", forest.FeatureImportance()).
			Msg("feature importance")
	}
	log.Info().
		Str("detector", best.Properties().Shortname).
		Str("confusion", matrix.Format()).
		Float64("precision", matrix.Precision()).
		Float64("recall", matrix.Recall()).
		Float64("f1", matrix.F1()).
		Str("elapsed", fmt.Sprintf("%+v", time.Since(start))).
		Msg("done")
}
