// Package service implements the export pipeline: lead CSV in,
// Mailchimp-importable CSV out
package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"leadhopper/internal/adapters/csvio"
	"leadhopper/internal/core/lead"
	"leadhopper/internal/core/normalize"
	"leadhopper/internal/core/tagmap"
	"leadhopper/internal/platform/logger"
	"leadhopper/internal/services/export/domain"
)

const progressEvery = 10000

// Config holds the export service defaults; RunInput overrides per run
type Config struct {
	Encoding       string
	EmailColumns   []string
	Delimiters     string
	ExcludeNoEmail bool
	Dedupe         bool
	Tagger         string
	Strict         bool
}

// Service implements domain.RunnerPort
type Service struct {
	Cfg Config

	// Mapping is the default tag mapping; nil means runs are untagged
	// unless the input supplies one
	Mapping *tagmap.Mapping
}

// New constructs the export service
func New(cfg Config, mapping *tagmap.Mapping) *Service {
	return &Service{Cfg: cfg, Mapping: mapping}
}

// withDefaults merges config defaults into a per-run input
func (s *Service) withDefaults(in domain.RunInput) domain.RunInput {
	if in.Encoding == "" {
		in.Encoding = s.Cfg.Encoding
	}
	if len(in.EmailColumns) == 0 {
		in.EmailColumns = s.Cfg.EmailColumns
	}
	if in.Delimiters == "" {
		in.Delimiters = s.Cfg.Delimiters
	}
	if in.Tagger == "" {
		in.Tagger = s.Cfg.Tagger
	}
	if in.Mapping == nil {
		in.Mapping = s.Mapping
	}
	in.ExcludeNoEmail = in.ExcludeNoEmail || s.Cfg.ExcludeNoEmail
	in.Dedupe = in.Dedupe || s.Cfg.Dedupe
	in.Strict = in.Strict || s.Cfg.Strict
	return in
}

// pipeline bundles the stages of one run
type pipeline struct {
	rd      *csvio.Reader
	stream  *normalize.Stream
	tagger  tagmap.Tagger
	columns []string
}

// open builds the pipeline over r. The caller keeps ownership of r
func (s *Service) open(r io.Reader, in domain.RunInput) (*pipeline, error) {
	rd, err := csvio.NewReader(r, csvio.Options{Encoding: in.Encoding})
	if err != nil {
		return nil, err
	}

	var tg tagmap.Tagger
	if in.Mapping != nil {
		tg, err = tagmap.New(in.Tagger, in.Mapping, tagmap.Config{Strict: in.Strict})
		if err != nil {
			return nil, err
		}
	}

	emailCols := in.EmailColumns
	if len(emailCols) == 0 {
		emailCols = lead.DefaultEmailColumns
	}

	return &pipeline{
		rd: rd,
		stream: normalize.New(rd, normalize.Options{
			EmailColumns:   emailCols,
			Delimiters:     in.Delimiters,
			ExcludeNoEmail: in.ExcludeNoEmail,
			Dedupe:         in.Dedupe,
		}),
		tagger:  tg,
		columns: lead.OutputColumns(rd.Header(), emailCols, tg != nil),
	}, nil
}

// next pulls one output-ready record through normalization and tagging
func (p *pipeline) next(ctx context.Context) (lead.Record, error) {
	if err := ctx.Err(); err != nil {
		return lead.Record{}, err
	}
	rec, err := p.stream.Next()
	if err != nil {
		return lead.Record{}, err
	}
	if p.tagger != nil {
		tags, terr := p.tagger.Tags(rec)
		if terr != nil {
			return lead.Record{}, terr
		}
		rec.Set(lead.FieldTags, tagmap.Join(tags))
	}
	return rec, nil
}

func (p *pipeline) summary(runID string, emitted int, elapsed time.Duration) domain.Summary {
	rs := p.rd.Stats()
	ns := p.stream.Stats()
	sum := domain.Summary{
		RunID:     runID,
		Rows:      rs.Rows,
		Skipped:   rs.Skipped,
		Emitted:   emitted,
		NoEmail:   ns.NoEmail,
		Deduped:   ns.Deduped,
		Columns:   p.columns,
		ElapsedMS: int(elapsed.Milliseconds()),
	}
	if p.tagger != nil {
		ts := p.tagger.Stats()
		sum.Tagged = ts.Tagged
		sum.Untagged = ts.Untagged
		sum.Misses = ts.Misses
	}
	return sum
}

// Run implements domain.RunnerPort
func (s *Service) Run(ctx context.Context, r io.Reader, w io.Writer, in domain.RunInput) (domain.Summary, error) {
	in = s.withDefaults(in)
	runID := uuid.NewString()
	ctx = logger.WithRun(ctx, runID)
	log := logger.C(ctx)
	start := time.Now()

	p, err := s.open(r, in)
	if err != nil {
		return domain.Summary{}, err
	}

	wr := csvio.NewWriter(w, p.columns)
	for {
		rec, err := p.next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return p.summary(runID, wr.Count(), time.Since(start)), err
		}
		if err := wr.Write(rec); err != nil {
			return p.summary(runID, wr.Count(), time.Since(start)), err
		}
		if wr.Count()%progressEvery == 0 {
			log.Debug().Int("emitted", wr.Count()).Msg("export progress")
		}
	}
	if err := wr.Flush(); err != nil {
		return p.summary(runID, wr.Count(), time.Since(start)), err
	}

	sum := p.summary(runID, wr.Count(), time.Since(start))
	log.Info().
		Int("rows", sum.Rows).
		Int("skipped", sum.Skipped).
		Int("emitted", sum.Emitted).
		Int("no_email", sum.NoEmail).
		Int("deduped", sum.Deduped).
		Int("tagged", sum.Tagged).
		Int("untagged", sum.Untagged).
		Int("elapsed_ms", sum.ElapsedMS).
		Msg("export complete")
	return sum, nil
}

// Preview implements domain.RunnerPort
func (s *Service) Preview(ctx context.Context, r io.Reader, in domain.RunInput, limit int) (domain.Preview, error) {
	in = s.withDefaults(in)
	if limit <= 0 {
		limit = 20
	}

	runID := uuid.NewString()
	ctx = logger.WithRun(ctx, runID)
	start := time.Now()

	p, err := s.open(r, in)
	if err != nil {
		return domain.Preview{}, err
	}

	// Column names render canonically, exactly as the CSV header would
	cols := make([]string, len(p.columns))
	for i, c := range p.columns {
		cols[i] = lead.CanonicalHeader(c)
	}

	// The whole stream is consumed so the summary covers the file,
	// not just the sampled rows
	out := domain.Preview{Columns: cols, Rows: make([][]string, 0, limit)}
	emitted := 0
	for {
		rec, err := p.next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.Preview{}, err
		}
		emitted++
		if len(out.Rows) == limit {
			out.Truncated = true
			continue
		}
		row := make([]string, len(p.columns))
		for i, c := range p.columns {
			row[i] = rec.Value(c)
		}
		out.Rows = append(out.Rows, row)
	}

	out.Summary = p.summary(runID, emitted, time.Since(start))
	logger.C(ctx).Debug().
		Int("rows", out.Summary.Rows).
		Int("emitted", out.Summary.Emitted).
		Int("sampled", len(out.Rows)).
		Msg("preview complete")
	return out, nil
}
