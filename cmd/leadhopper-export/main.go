package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"leadhopper/internal/core/version"
	"leadhopper/internal/modkit"
	"leadhopper/internal/modkit/module"
	"leadhopper/internal/platform/config"
	"leadhopper/internal/platform/logger"

	exportdom "leadhopper/internal/services/export/domain"
	exportmod "leadhopper/internal/services/export/module"
)

func main() {
	config.LoadDotenv()
	root := config.New()
	l := logger.Get()

	fIn := flag.String("in", "", "input lead CSV, plain or gzipped (- for stdin)")
	fOut := flag.String("out", "", "output CSV path (- or empty for stdout)")
	fVersion := flag.Bool("version", false, "print build info and exit")

	// the rest reach the module through the environment, so only flags
	// the user actually passed may shadow env values
	forward := map[string]string{
		"mapping":          "CORE_EXPORT_MAPPING",
		"tagger":           "CORE_EXPORT_TAGGER",
		"encoding":         "CORE_EXPORT_ENCODING",
		"email-columns":    "CORE_EXPORT_EMAIL_COLUMNS",
		"delims":           "CORE_EXPORT_DELIMITERS",
		"exclude-no-email": "CORE_EXPORT_EXCLUDE_NO_EMAIL",
		"dedupe":           "CORE_EXPORT_DEDUPE",
		"strict-tags":      "CORE_EXPORT_STRICT",
	}
	flag.String("mapping", "", "tag mapping document (YAML)")
	flag.String("tagger", "", "tagging strategy: standard | priority")
	flag.String("encoding", "", "input charset when not UTF-8 (e.g. windows-1252)")
	flag.String("email-columns", "", "comma-separated email column names")
	flag.String("delims", "", "characters that split multi-address cells")
	flag.Bool("exclude-no-email", false, "drop leads without any email")
	flag.Bool("dedupe", false, "drop repeated emails after the first")
	flag.Bool("strict-tags", false, "fail when a category has no mapping entry")
	flag.Parse()

	if *fVersion {
		fmt.Println(version.Info())
		return
	}
	if *fIn == "" {
		l.Panic().Msg("must provide -in (use - for stdin)")
	}

	flag.Visit(func(f *flag.Flag) {
		if key, ok := forward[f.Name]; ok {
			_ = os.Setenv(key, f.Value.String())
		}
	})

	// Shared deps for modules
	deps := modkit.Deps{
		Cfg: root,
		Log: *l,
	}

	em := exportmod.New(deps)
	module.Register(em.Name(), em.Ports())
	ports := em.Ports().(exportmod.Ports)

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

	out := io.Writer(os.Stdout)
	var outFile *os.File
	if *fOut != "" && *fOut != "-" {
		f, err := os.Create(*fOut)
		if err != nil {
			l.Panic().Err(err).Str("path", *fOut).Msg("cannot create output")
		}
		outFile = f
		out = f
	}

	if _, err := ports.Runner.Run(context.Background(), in, out, exportdom.RunInput{}); err != nil {
		l.Fatal().Err(err).Msg("export failed")
	}
	if outFile != nil {
		if err := outFile.Close(); err != nil {
			l.Fatal().Err(err).Msg("failed to close output")
		}
	}
}
