package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"leadhopper/internal/adapters/mailchimp"
	"leadhopper/internal/core/version"
	"leadhopper/internal/modkit"
	"leadhopper/internal/modkit/module"
	"leadhopper/internal/platform/config"
	"leadhopper/internal/platform/logger"

	pushdom "leadhopper/internal/services/push/domain"
	pushmod "leadhopper/internal/services/push/module"
)

func main() {
	config.LoadDotenv()
	root := config.New()
	l := logger.Get()

	fIn := flag.String("in", "", "input lead CSV, plain or gzipped (- for stdin)")
	fPing := flag.Bool("ping", false, "verify the API key and exit")
	fLists := flag.Bool("lists", false, "list the account's audiences and exit")
	fVersion := flag.Bool("version", false, "print build info and exit")

	// the rest reach the module through the environment, so only flags
	// the user actually passed may shadow env values
	forward := map[string]string{
		"list":          "CORE_PUSH_LIST",
		"mapping":       "CORE_PUSH_MAPPING",
		"tagger":        "CORE_PUSH_TAGGER",
		"encoding":      "CORE_PUSH_ENCODING",
		"email-columns": "CORE_PUSH_EMAIL_COLUMNS",
		"delims":        "CORE_PUSH_DELIMITERS",
		"extra-tags":    "CORE_PUSH_EXTRA_TAGS",
		"workers":       "CORE_PUSH_WORKERS",
		"rate":          "SERVICE_MAILCHIMP_RPS",
		"dedupe":        "CORE_PUSH_DEDUPE",
		"strict-tags":   "CORE_PUSH_STRICT",
		"dry-run":       "CORE_PUSH_DRY_RUN",
	}
	flag.String("list", "", "target audience (list) id")
	flag.String("mapping", "", "tag mapping document (YAML)")
	flag.String("tagger", "", "tagging strategy: standard | priority")
	flag.String("encoding", "", "input charset when not UTF-8 (e.g. windows-1252)")
	flag.String("email-columns", "", "comma-separated email column names")
	flag.String("delims", "", "characters that split multi-address cells")
	flag.String("extra-tags", "", "comma-separated tags applied to every member")
	flag.Int("workers", 0, "concurrent member writers")
	flag.Float64("rate", 0, "API requests per second")
	flag.Bool("dedupe", true, "drop repeated emails after the first")
	flag.Bool("strict-tags", false, "fail when a category has no mapping entry")
	flag.Bool("dry-run", false, "walk the pipeline without calling the API")
	flag.Parse()

	if *fVersion {
		fmt.Println(version.Info())
		return
	}

	flag.Visit(func(f *flag.Flag) {
		if key, ok := forward[f.Name]; ok {
			_ = os.Setenv(key, f.Value.String())
		}
	})

	// The client is optional; dry runs walk the pipeline without one
	var chimp *mailchimp.Client
	if mcOpts := mailchimp.FromConfig(root); mcOpts.APIKey != "" {
		c, err := mailchimp.New(mcOpts)
		if err != nil {
			l.Panic().Err(err).Msg("mailchimp client")
		}
		chimp = c
	}

	// Shared deps for modules
	deps := modkit.Deps{
		Cfg:   root,
		Log:   *l,
		Chimp: chimp,
	}

	pm := pushmod.New(deps)
	module.Register(pm.Name(), pm.Ports())
	ports := pm.Ports().(pushmod.Ports)

	if *fPing || *fLists {
		if ports.Directory == nil {
			l.Panic().Msg("SERVICE_MAILCHIMP_API_KEY is required for -ping and -lists")
		}
		ctx := context.Background()
		if *fPing {
			if err := ports.Directory.Ping(ctx); err != nil {
				l.Fatal().Err(err).Msg("ping failed")
			}
			l.Info().Msg("mailchimp reachable")
		}
		if *fLists {
			auds, err := ports.Directory.Audiences(ctx)
			if err != nil {
				l.Fatal().Err(err).Msg("cannot list audiences")
			}
			printJSON(l, auds)
		}
		return
	}

	if *fIn == "" {
		l.Panic().Msg("must provide -in (use - for stdin)")
	}

	in := io.Reader(os.Stdin)
	if *fIn != "-" {
		f, err := os.Open(*fIn)
		if err != nil {
			l.Panic().Err(err).Str("path", *fIn).Msg("cannot open input")
		}
		defer func() {
			if err := f.Close(); err != nil {
				l.Error().Err(err).Msg("failed to close input")
			}
		}()
		in = f
	}

	sum, err := ports.Pusher.Push(context.Background(), in, pushdom.PushInput{})

	// The summary prints even on failure; it reports what did happen
	printJSON(l, sum)

	if err != nil {
		if errors.Is(err, pushdom.ErrPartial) {
			l.Fatal().Err(err).Msg("push finished with failures")
		}
		l.Fatal().Err(err).Msg("push failed")
	}
}

func printJSON(l *logger.Logger, v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		l.Error().Err(err).Msg("failed to print")
	}
}
