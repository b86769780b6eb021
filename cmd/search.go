package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spigell/lente/internal/candidates"
	"github.com/spigell/lente/internal/locale"
	"github.com/spigell/lente/internal/logger"
	"github.com/spigell/lente/internal/matcher"
	"github.com/spigell/lente/internal/ranking"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptReportByLocation    = "Report by location"
	PromptShowCandidate       = "Show candidate details"
	PromptBack                = "back"
	PromptResultsToFile       = "Dump results to file"
	PromptAppendToExcludeFile = "Append all results to exclude file"
	PromptExit                = "Exit"

	redacted = "<redacted>"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptReportByLocation, PromptShowCandidate, PromptResultsToFile, PromptAppendToExcludeFile, PromptExit},
}

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Rank candidates against a free-text query",
	Run: func(cmd *cobra.Command, args []string) {
		search(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().BoolP("yes", "y", false, "print the results and exit without the interactive menu")
	searchCmd.Flags().BoolP("all", "a", false, "list every candidate, ignoring the minimum score")
	searchCmd.Flags().StringP("exclude-file", "e", "", "special file with candidates to exclude. Default is unset.")
	searchCmd.Flags().Int("min-score", ranking.DefaultMinScore, "candidates must score above this value")
	searchCmd.Flags().StringSlice("languages", nil, "keep only candidates speaking one of these languages")
	searchCmd.Flags().Int("workers", 0, "scoring workers (default is the number of CPUs)")
	searchCmd.Flags().Duration("timeout", 0, "time limit for loading and ranking candidates (default 5s)")
	searchCmd.Flags().String("source", "", "candidate source: file, sqlite, postgres or supabase")
	searchCmd.Flags().String("file", "", "candidates file for the file source")
	searchCmd.Flags().String("sqlite", "", "database path for the sqlite source")
	searchCmd.Flags().String("locale", "", "language of the explanations")

	viper.BindPFlag("exclude-file", searchCmd.Flags().Lookup("exclude-file"))
	viper.BindPFlag("search.min-score", searchCmd.Flags().Lookup("min-score"))
	viper.BindPFlag("search.languages", searchCmd.Flags().Lookup("languages"))
	viper.BindPFlag("search.workers", searchCmd.Flags().Lookup("workers"))
	viper.BindPFlag("search.timeout", searchCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("source.kind", searchCmd.Flags().Lookup("source"))
	viper.BindPFlag("source.file", searchCmd.Flags().Lookup("file"))
	viper.BindPFlag("source.sqlite", searchCmd.Flags().Lookup("sqlite"))
	viper.BindPFlag("locale", searchCmd.Flags().Lookup("locale"))
}

// search is the main command for the cli.
func search(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil {
		logger.Fatal("config is required")
	}

	logger.Info("starting lente", zap.String("version", resolveVersion()))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(redactedConfig(config), "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	query := resolveQuery(args, config.Search)
	if query == "" {
		logger.Info("exiting", zap.String("reason", "empty query"))
		return
	}

	if config.Search == nil {
		config.Search = &SearchConfig{}
	}
	if config.Search.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Search.Timeout)
		defer cancel()
	}

	source, err := candidates.NewSource(ctx, config.Source, logger)
	if err != nil {
		logger.Fatal("configuring the candidate source", zap.Error(err))
	}
	defer source.Close()

	searchLogger := newSearchLogger(logger, query, source.Name())
	searchLogger.Info("starting the search")

	list, err := source.Load(ctx)
	if err != nil {
		searchLogger.Fatal("loading candidates", zap.Error(err))
	}

	searchLogger.Info("getting candidates", zap.Int("count", list.Len()))

	steps := ranking.DefaultSteps()
	if all, _ := cmd.Flags().GetBool("all"); all {
		ranking.DisableByName(steps, "threshold", "all flag is set")
	}

	shortlist, err := ranking.Rank(ctx, rankingConfig(query, config), ranking.Deps{
		Logger: searchLogger,
		Scorer: matcher.New(),
	}, steps, list)
	if err != nil {
		searchLogger.Fatal("ranking failed", zap.Error(err))
	}

	for _, status := range ranking.Describe(steps) {
		searchLogger.Debug("ranking step status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	if shortlist.Len() == 0 {
		searchLogger.Info("exiting", zap.String("reason", "no candidates matched the query"))
		return
	}

	translator, err := locale.New(config.Locale)
	if err != nil {
		searchLogger.Fatal("loading translations", zap.Error(err))
	}
	if translator.Fallback() {
		searchLogger.Warn("locale is not supported, falling back to english",
			zap.String("locale", config.Locale),
			zap.Strings("supported", locale.Supported()),
		)
	}

	printResults(os.Stdout, shortlist, translator)

	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, searchLogger, config, shortlist); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, config *Config, shortlist *ranking.Shortlist) error {
	switch action {
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	case PromptReportByLocation:
		pretty, _ := json.MarshalIndent(shortlist.Candidates().ReportByLocation(), "", "  ")
		logger.Info(string(pretty), zap.Int("candidates count", shortlist.Len()))
		return nil
	case PromptShowCandidate:
		return showCandidates(logger, shortlist.Candidates())
	case PromptResultsToFile:
		filename, err := shortlist.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		if err := appendToExcludeFile(config.ExcludeFile, shortlist.Candidates()); err != nil {
			return err
		}
		logger.Info("results appended to exclude file",
			zap.String("path", config.ExcludeFile),
			zap.Int("count", shortlist.Len()),
		)
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func showCandidates(logger *zap.Logger, list *candidates.Candidates) error {
	for {
		items := make([]string, 0, list.Len()+1)
		for _, c := range list.Items {
			items = append(items, candidateLabel(c))
		}

		candidatePrompt := promptui.Select{
			Label: "Choose a candidate and press ENTER",
			Items: append(items, PromptBack),
		}

		_, selected, err := candidatePrompt.Run()
		if err != nil {
			return err
		}

		if selected == PromptBack {
			return nil
		}

		c, err := candidateFromLabel(list, selected)
		if err != nil {
			return err
		}

		pretty, _ := json.MarshalIndent(c, "", "  ")
		logger.Info(string(pretty), zap.String("candidate_id", c.ID))
	}
}

func candidateLabel(c *candidates.Candidate) string {
	return fmt.Sprintf("%s %s / %s", c.ID, c.Name, c.Location)
}

// candidateFromLabel resolves a menu label back to the candidate through its leading ID.
func candidateFromLabel(list *candidates.Candidates, label string) (*candidates.Candidate, error) {
	id, _, _ := strings.Cut(label, " ")
	c := list.FindByID(id)
	if c == nil {
		return nil, fmt.Errorf("there is no such candidate id %s", id)
	}
	return c, nil
}

func appendToExcludeFile(path string, list *candidates.Candidates) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("exclude-file is not configured")
	}

	excluded, err := candidates.GetExcludedCandidatesFromFile(path)
	if err != nil {
		return fmt.Errorf("getting excluded candidates from file: %w", err)
	}

	excluded.Append(list.ToExcluded())
	if err := excluded.ToFile(path); err != nil {
		return fmt.Errorf("writing exclude file: %w", err)
	}
	return nil
}

// redactedConfig returns a copy of config safe to log.
func redactedConfig(config *Config) *Config {
	out := *config
	if config.Source == nil {
		return &out
	}

	source := *config.Source
	if source.Postgres != nil && source.Postgres.URL != "" {
		pg := *source.Postgres
		pg.URL = redacted
		source.Postgres = &pg
	}
	if source.Supabase != nil && source.Supabase.AnonKey != "" {
		sb := *source.Supabase
		sb.AnonKey = redacted
		source.Supabase = &sb
	}
	out.Source = &source
	return &out
}

func newSearchLogger(l *zap.Logger, query, source string) *zap.Logger {
	return logger.WithSearchFields(l, query, source)
}

// resolveQuery prefers positional arguments over the configured query.
func resolveQuery(args []string, cfg *SearchConfig) string {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" && cfg != nil {
		query = strings.TrimSpace(cfg.Query)
	}
	return query
}

func rankingConfig(query string, config *Config) *ranking.Config {
	cfg := &ranking.Config{
		Query:       query,
		ExcludeFile: config.ExcludeFile,
	}
	if config.Search != nil {
		cfg.MinScore = config.Search.MinScore
		cfg.Languages = config.Search.Languages
		cfg.Workers = config.Search.Workers
	}
	return cfg
}

func printResults(w io.Writer, shortlist *ranking.Shortlist, translator *locale.Translator) {
	for i, e := range shortlist.Items {
		location := e.Candidate.Location
		if strings.TrimSpace(location) == "" {
			location = "-"
		}
		fmt.Fprintf(w, "%d. %s (%d%%) / %s\n", i+1, e.Candidate.Name, e.Result.Score, location)
		for _, line := range translator.Explain(e.Result.Reasons) {
			fmt.Fprintf(w, "   - %s\n", line)
		}
	}
}
