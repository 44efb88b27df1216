// Package pipeline is the dispatch loop: it walks a manifest in order and
// hands each record to the installer for its tag.
//
// A record that fails to install is logged, remembered in the Summary and
// skipped over. Only context cancellation, or the first failure in strict
// mode, ends the loop early.
package pipeline

import (
	"context"
	"fmt"

	"github.com/arthur-debert/rigup/pkg/dialog"
	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/installer"
	"github.com/arthur-debert/rigup/pkg/logging"
	"github.com/arthur-debert/rigup/pkg/manifest"
	"github.com/arthur-debert/rigup/pkg/session"
)

// Options tune the loop.
type Options struct {
	// Strict stops at the first failed record
	Strict bool
}

// Failure is one record that could not be installed.
type Failure struct {
	Record manifest.Record
	Err    error
}

// Summary is the outcome of a Run.
type Summary struct {
	Total     int
	Installed int
	Skipped   int
	Failed    []Failure
	// Err is set when the loop stopped before the end of the manifest
	Err error
}

// OK reports whether every record was processed without failure.
func (s Summary) OK() bool {
	return s.Err == nil && len(s.Failed) == 0
}

// FailedIdentifiers lists failed records in manifest order.
func (s Summary) FailedIdentifiers() []string {
	ids := make([]string, len(s.Failed))
	for i, f := range s.Failed {
		ids[i] = f.Record.Identifier
	}
	return ids
}

// Processed is the number of records that reached an installer.
func (s Summary) Processed() int {
	return s.Installed + s.Skipped + len(s.Failed)
}

// Run installs every record of m.
func Run(ctx context.Context, sess *session.Session, m *manifest.Manifest, set installer.Set, d dialog.Dialog, opts Options) Summary {
	logger := logging.GetLogger("pipeline")
	done := logging.LogOperationStart(logger, "dispatch")
	defer done()

	summary := Summary{Total: m.Len()}
	sess.Progress.Start(summary.Total)
	if m == nil {
		return summary
	}

	for _, rec := range m.Records {
		if err := ctx.Err(); err != nil {
			summary.Err = errors.Wrap(err, errors.ErrOperatorCancelled, "installation interrupted")
			logger.Warn().Int("processed", summary.Processed()).Msg("Dispatch interrupted")
			return summary
		}

		n := sess.Progress.Advance()
		if rec.Err != nil {
			// nothing to dispatch; the line itself is broken
			if summary.fail(rec, rec.Err, opts) {
				return summary
			}
			continue
		}

		annotation := manifest.Unquote(rec.Annotation)
		d.ShowProgress(ProgressText(rec, annotation, n, summary.Total))

		outcome, err := set.For(rec.Tag).Install(ctx, sess, rec.Identifier, annotation)
		if err != nil {
			if summary.fail(rec, err, opts) {
				return summary
			}
			continue
		}

		switch outcome {
		case installer.OutcomeSkipped:
			summary.Skipped++
		default:
			summary.Installed++
		}
	}

	logger.Info().
		Int("installed", summary.Installed).
		Int("skipped", summary.Skipped).
		Int("failed", len(summary.Failed)).
		Msg("Dispatch finished")
	return summary
}

// fail records rec as failed and reports whether the loop must stop.
func (s *Summary) fail(rec manifest.Record, err error, opts Options) bool {
	logger := logging.GetLogger("pipeline")
	failErr := errors.Wrapf(err, errors.ErrRecordInstallFailed, "failed to install %s", rec.Identifier).
		WithDetail("identifier", rec.Identifier).
		WithDetail("tag", rec.Tag.String()).
		WithDetail("line", rec.Line)
	logger.Error().
		Err(err).
		Str("identifier", rec.Identifier).
		Str("tag", rec.Tag.String()).
		Int("line", rec.Line).
		Msg("Record install failed, continuing")
	s.Failed = append(s.Failed, Failure{Record: rec, Err: failErr})

	if opts.Strict {
		s.Err = failErr
		return true
	}
	return false
}

// ProgressText is the operator-facing line for record n of total.
func ProgressText(rec manifest.Record, annotation string, n, total int) string {
	id := rec.Identifier
	var via string
	switch rec.Tag {
	case manifest.TagAUR:
		via = " from the AUR"
	case manifest.TagGit:
		id = manifest.RepoName(rec.Identifier)
		via = " with git and make"
	case manifest.TagPip:
		via = " with pip"
	}
	text := fmt.Sprintf("Installing `%s` (%d of %d)%s.", id, n, total, via)
	if annotation != "" {
		text += " " + annotation
	}
	return text
}
