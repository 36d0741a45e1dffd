package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"nutritrack/internal/adapter/repo"
	"nutritrack/internal/domain"
	"nutritrack/internal/export"
	"nutritrack/internal/infra"
	"nutritrack/internal/nutrition"
)

type options struct {
	date   string
	days   int
	age    int
	sex    string
	format string
	out    string
}

func main() {
	var opts options
	flag.StringVar(&opts.date, "date", "", "day to summarize (YYYY-MM-DD, defaults to today)")
	flag.IntVar(&opts.days, "days", 0, "export the last N days of history instead of a daily summary")
	flag.IntVar(&opts.age, "age", domain.DefaultProfileAge, "profile age")
	flag.StringVar(&opts.sex, "sex", string(domain.SexMale), "profile sex (male, female)")
	flag.StringVar(&opts.format, "format", "text", "history format: text, csv, xlsx or zip")
	flag.StringVar(&opts.out, "out", "", "output file (defaults to stdout)")
	flag.Parse()

	_ = godotenv.Load()

	if err := run(opts); err != nil {
		exitWithError(err)
	}
}

func run(opts options) (err error) {
	sex, err := domain.ParseSex(opts.sex)
	if err != nil {
		return err
	}
	profile := domain.Profile{Age: opts.age, Sex: sex}
	if err := profile.Validate(); err != nil {
		return err
	}

	cfg, err := infra.LoadConfig()
	if err != nil {
		return err
	}
	logger := infra.NewLogger(cfg.AppEnv).Level(zerolog.WarnLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	defer pool.Close()
	journal := repo.NewJournalRepository(infra.NewSQLRunner(pool, logger))

	out := io.Writer(os.Stdout)
	if opts.out != "" {
		f, createErr := os.Create(opts.out)
		if createErr != nil {
			return createErr
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		out = f
	}

	if opts.days > 0 {
		return writeHistory(ctx, out, journal, cfg.Location, opts.days, opts.format)
	}

	day := time.Now().In(cfg.Location)
	if opts.date != "" {
		if day, err = time.ParseInLocation(nutrition.DateLayout, opts.date, cfg.Location); err != nil {
			return fmt.Errorf("invalid -date: %w", err)
		}
	}
	targets, err := nutrition.NewTargetProvider(cfg, &logger)
	if err != nil {
		return err
	}
	target, err := targets.Targets(ctx, profile)
	if err != nil {
		return fmt.Errorf("failed to compute recommendations: %w", err)
	}
	entries, err := journal.ListByDay(ctx, day)
	if err != nil {
		return fmt.Errorf("failed to load journal: %w", err)
	}
	printSummary(out, nutrition.Summarize(profile, target, entries, day))
	return nil
}

func writeHistory(ctx context.Context, out io.Writer, journal domain.JournalRepository, loc *time.Location, days int, format string) error {
	now := time.Now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	entries, err := journal.ListSince(ctx, today.AddDate(0, 0, -(days-1)))
	if err != nil {
		return fmt.Errorf("failed to load journal: %w", err)
	}
	if format == "text" {
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "DATE\tKCAL\tPROTEINS\tCARBS\tFAT\tPRODUCTS")
		for _, d := range nutrition.DailyTotals(entries, loc) {
			fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%.1f\t%.1f\t%d\n", d.Date, d.TotalKcal, d.TotalProteins, d.TotalCarbs, d.TotalFat, d.NumProducts)
		}
		return tw.Flush()
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	return export.Write(out, f, export.NewHistory(entries, loc), now)
}

func printSummary(out io.Writer, s nutrition.Summary) {
	fmt.Fprintf(out, "Daily summary %s (age %d, %s, group %s)\n\n", s.Summary.Date, s.UserProfile.Age, s.UserProfile.Sex, s.Recommendations.AgeGroup)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NUTRIENT\tCURRENT\tTARGET\tPERCENT\tTIER")
	for _, ind := range s.Indicators {
		fmt.Fprintf(tw, "%s\t%.1f\t%.0f\t%.1f%%\t%s\n", ind.Nutrient, ind.Current, ind.Target, ind.Percent, ind.Tier)
	}
	_ = tw.Flush()
	fmt.Fprintf(out, "\n%d product(s) logged\n", s.Summary.NumProducts)
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "report: %v\n", err)
	os.Exit(1)
}
