// Package service implements the push pipeline: lead CSV in, members and
// tags written to a Mailchimp audience through a bounded worker pool
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"leadhopper/internal/adapters/csvio"
	"leadhopper/internal/core/lead"
	"leadhopper/internal/core/normalize"
	"leadhopper/internal/core/tagmap"
	perr "leadhopper/internal/platform/errors"
	"leadhopper/internal/platform/logger"
	"leadhopper/internal/services/push/domain"
)

const progressEvery = 1000

// Config holds the push service defaults; PushInput overrides per run
type Config struct {
	// Workers is the number of concurrent API writers; <=0 -> 4
	Workers int

	// FailureCap bounds the failure list kept in the summary; <=0 -> 100
	FailureCap int

	ListID       string
	Encoding     string
	EmailColumns []string
	Delimiters   string
	Dedupe       bool
	Tagger       string
	Strict       bool
	ExtraTags    []string
	DryRun       bool
}

// Service implements domain.PusherPort
type Service struct {
	Cfg Config

	// Mapping is the default tag mapping; nil means members are pushed
	// with extra tags only
	Mapping *tagmap.Mapping

	// Writer is the outbound member sink; nil is only valid for dry runs
	Writer domain.MemberWriter
}

// New constructs the push service
func New(cfg Config, mapping *tagmap.Mapping, w domain.MemberWriter) *Service {
	return &Service{Cfg: cfg, Mapping: mapping, Writer: w}
}

func (s *Service) withDefaults(in domain.PushInput) domain.PushInput {
	if in.ListID == "" {
		in.ListID = s.Cfg.ListID
	}
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
	if len(in.ExtraTags) == 0 {
		in.ExtraTags = s.Cfg.ExtraTags
	}
	in.Dedupe = in.Dedupe || s.Cfg.Dedupe
	in.Strict = in.Strict || s.Cfg.Strict
	in.DryRun = in.DryRun || s.Cfg.DryRun
	return in
}

// job is one member ready for a worker
type job struct {
	seq    int
	member domain.MemberInput
	tags   []string
}

// Push implements domain.PusherPort
func (s *Service) Push(ctx context.Context, r io.Reader, in domain.PushInput) (domain.Summary, error) {
	in = s.withDefaults(in)
	if !in.DryRun {
		if in.ListID == "" {
			return domain.Summary{}, perr.InvalidArgf("push: audience list id required")
		}
		if s.Writer == nil {
			return domain.Summary{}, perr.InvalidArgf("push: mailchimp client not configured")
		}
	}

	runID := uuid.NewString()
	ctx = logger.WithRun(ctx, runID)
	log := logger.C(ctx)
	start := time.Now()

	rd, err := csvio.NewReader(r, csvio.Options{Encoding: in.Encoding})
	if err != nil {
		return domain.Summary{}, err
	}

	var tg tagmap.Tagger
	if in.Mapping != nil {
		tg, err = tagmap.New(in.Tagger, in.Mapping, tagmap.Config{Strict: in.Strict})
		if err != nil {
			return domain.Summary{}, err
		}
	}

	stream := normalize.New(rd, normalize.Options{
		EmailColumns: in.EmailColumns,
		Delimiters:   in.Delimiters,
		Dedupe:       in.Dedupe,
	})

	workers := s.Cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	failCap := s.Cfg.FailureCap
	if failCap <= 0 {
		failCap = 100
	}

	var (
		pushed, failed atomic.Int64
		mu             sync.Mutex
		failures       []domain.Failure
		wg             sync.WaitGroup
	)
	jobs := make(chan job, workers*2)

	record := func(f domain.Failure) {
		failed.Add(1)
		mu.Lock()
		if len(failures) < failCap {
			failures = append(failures, f)
		}
		mu.Unlock()
		log.Warn().Int("seq", f.Seq).Str("email", f.Email).Str("stage", f.Stage).
			Str("error", f.Error).Msg("push member failed")
	}

	worker := func() {
		defer wg.Done()
		for j := range jobs {
			if in.DryRun {
				pushed.Add(1)
				continue
			}
			if err := s.Writer.UpsertMember(ctx, in.ListID, j.member); err != nil {
				record(domain.Failure{Seq: j.seq, Email: j.member.Email, Stage: domain.StageMember, Error: err.Error()})
				continue
			}
			if len(j.tags) > 0 {
				if err := s.Writer.TagMember(ctx, in.ListID, j.member.Email, j.tags); err != nil {
					record(domain.Failure{Seq: j.seq, Email: j.member.Email, Stage: domain.StageTags, Error: err.Error()})
					continue
				}
			}
			if n := pushed.Add(1); n%progressEvery == 0 {
				log.Debug().Int64("pushed", n).Msg("push progress")
			}
		}
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go worker()
	}

	// Single producer: the tagger and the csv reader are not concurrent-safe
	var prodErr error
	seq := 0
	for {
		if err := ctx.Err(); err != nil {
			prodErr = err
			break
		}
		rec, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			prodErr = err
			break
		}

		var tags []string
		if tg != nil {
			tags, err = tg.Tags(rec)
			if err != nil {
				prodErr = err
				break
			}
		}
		seq++

		email := strings.TrimSpace(rec.Value(lead.FieldEmail))
		if email == "" {
			continue
		}
		jobs <- job{
			seq: seq,
			member: domain.MemberInput{
				Email:     email,
				FirstName: rec.Value(lead.FieldFirstName),
				LastName:  rec.Value(lead.FieldLastName),
			},
			tags: mergeTags(tags, in.ExtraTags),
		}
	}
	close(jobs)
	wg.Wait()

	rs := rd.Stats()
	ns := stream.Stats()
	sum := domain.Summary{
		RunID:     runID,
		ListID:    in.ListID,
		DryRun:    in.DryRun,
		Rows:      rs.Rows,
		Skipped:   rs.Skipped,
		Emitted:   ns.Emitted,
		NoEmail:   ns.NoEmail,
		Deduped:   ns.Deduped,
		Pushed:    int(pushed.Load()),
		Failed:    int(failed.Load()),
		Failures:  failures,
		ElapsedMS: int(time.Since(start).Milliseconds()),
	}
	if tg != nil {
		ts := tg.Stats()
		sum.Tagged = ts.Tagged
		sum.Untagged = ts.Untagged
		sum.Misses = ts.Misses
	}

	log.Info().
		Str("list_id", sum.ListID).
		Bool("dry_run", sum.DryRun).
		Int("rows", sum.Rows).
		Int("emitted", sum.Emitted).
		Int("pushed", sum.Pushed).
		Int("failed", sum.Failed).
		Int("elapsed_ms", sum.ElapsedMS).
		Msg("push complete")

	if prodErr != nil {
		return sum, prodErr
	}
	if sum.Failed > 0 {
		return sum, fmt.Errorf("push: %d of %d members failed: %w", sum.Failed, sum.Pushed+sum.Failed, domain.ErrPartial)
	}
	return sum, nil
}

// mergeTags appends extras to mapped tags, dropping repeats in order
func mergeTags(mapped, extra []string) []string {
	if len(extra) == 0 {
		return mapped
	}
	out := make([]string, 0, len(mapped)+len(extra))
	seen := make(map[string]struct{}, len(mapped)+len(extra))
	for _, set := range [][]string{mapped, extra} {
		for _, t := range set {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}
