package cmd

import (
	"context"
	"log"

	"github.com/spigell/lente/internal/candidates"
	"github.com/spigell/lente/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import candidates from a YAML or JSON file into a SQLite database",
	Run: func(cmd *cobra.Command, _ []string) {
		seed(cmd)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().String("from", "", "YAML or JSON file with candidates")
	seedCmd.Flags().String("sqlite", "", "SQLite database to write into")

	seedCmd.MarkFlagRequired("from")
	seedCmd.MarkFlagRequired("sqlite")
}

func seed(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	from, _ := cmd.Flags().GetString("from")
	path, _ := cmd.Flags().GetString("sqlite")

	list, err := candidates.NewFileSource(from).Load(ctx)
	if err != nil {
		logger.Fatal("loading candidates", zap.Error(err))
	}

	store, err := candidates.NewSQLiteStore(path)
	if err != nil {
		logger.Fatal("opening sqlite store", zap.Error(err))
	}
	defer store.Close()

	if err := store.Save(ctx, list); err != nil {
		logger.Fatal("saving candidates", zap.Error(err))
	}

	logger.Info("candidates imported",
		zap.String("from", from),
		zap.String("sqlite", path),
		zap.Int("count", list.Len()),
	)
}
