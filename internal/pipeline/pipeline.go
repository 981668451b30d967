// Package pipeline fans a sales-call transcript out to the three
// analyzer agents concurrently and merges their opinions into one
// coaching report.
package pipeline

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/call-coach/internal/agents"
	"github.com/sells-group/call-coach/internal/model"
)

// Runner is the one public entry point of the analysis core. The
// analyzers are stateless and share only the retriever's read-only
// index, so a single Runner is safe for concurrent calls.
type Runner struct {
	transcripts *agents.TranscriptAnalyzer
	coach       *agents.SalesCoach
	objections  *agents.ObjectionExpert
}

// NewRunner builds the three analyzers over a shared retriever. The
// company name scopes retrieval to a company knowledge base.
func NewRunner(retriever agents.Retriever, company string) *Runner {
	return &Runner{
		transcripts: agents.NewTranscriptAnalyzer(retriever, company),
		coach:       agents.NewSalesCoach(retriever, company),
		objections:  agents.NewObjectionExpert(retriever, company),
	}
}

// Run analyzes a transcript. The transcript analyzer's own sentiment is
// authoritative: it is computed up front from the same signal scan the
// analyzer uses and forwarded to the coach and the objection expert.
func (r *Runner) Run(ctx context.Context, transcript string) (*model.Report, error) {
	sentiment := agents.ReadSentiment(transcript).Label
	return r.run(ctx, transcript, sentiment)
}

// RunWithHint analyzes a transcript with an externally supplied
// sentiment hint, matching the legacy entry point whose callers
// pre-compute sentiment upstream. Run is the canonical contract. A
// missing hint is substituted with Neutral, which the objection expert
// requires.
func (r *Runner) RunWithHint(ctx context.Context, transcript, hint string) (*model.Report, error) {
	if hint == "" {
		hint = model.SentimentNeutral
	}
	return r.run(ctx, transcript, hint)
}

func (r *Runner) run(ctx context.Context, transcript, sentiment string) (*model.Report, error) {
	log := zap.L().With(
		zap.String("sentiment", sentiment),
		zap.Int("transcript_len", len(transcript)),
	)
	log.Debug("pipeline: starting analysis")

	var (
		analysis   *model.TranscriptAnalysis
		coaching   *model.CoachingFeedback
		objections *model.ObjectionFeedback
	)

	// Join-all fan-out: wait for all three, no partial reports.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		analysis, err = r.transcripts.Analyze(gctx, transcript)
		return err
	})
	g.Go(func() error {
		var err error
		coaching, err = r.coach.Coach(gctx, transcript, sentiment)
		return err
	})
	g.Go(func() error {
		var err error
		objections, err = r.objections.Analyze(gctx, transcript, sentiment)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "pipeline: analyzer fan-out")
	}

	report := Aggregate(analysis, coaching, objections)
	log.Debug("pipeline: analysis complete",
		zap.Float64("score", report.RepPerformance.Score),
		zap.String("computed_sentiment", report.Sentiment),
	)
	return report, nil
}
