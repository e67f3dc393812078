package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/okian/halloffame/internal/adapters/csvimport"
	"github.com/okian/halloffame/internal/domain/dedupe"
	"github.com/okian/halloffame/internal/domain/model"
	"github.com/okian/halloffame/internal/domain/types"
	"github.com/okian/halloffame/pkg/logger"
	"github.com/okian/halloffame/pkg/metrics"
)

// ImportCSV adds every row of a CSV upload with the same rules as
// AddStudent. Rows repeating a (name, team) pair, either already stored or
// earlier in the same file, count as duplicates.
func (s *Service) ImportCSV(ctx context.Context, sess Session, r io.Reader) (types.ImportReport, error) {
	if err := s.authorize(ctx, sess, "import"); err != nil {
		return types.ImportReport{}, err
	}

	rows, skipped, err := csvimport.Parse(r, csvimport.WithMaxRows(s.maxImportRows))
	if err != nil {
		s.logger.Warn(ctx, "import rejected", logger.Error(err))
		return types.ImportReport{}, fmt.Errorf("%w: %w", ErrInvalidImport, err)
	}

	report := types.ImportReport{Skipped: len(skipped)}
	for _, e := range skipped {
		report.Issues = append(report.Issues, types.ImportIssue{Line: e.Line, Reason: e.Reason})
	}

	seen := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.importDedupeSize))

	s.writeMu.Lock()
	for _, row := range rows {
		key := dedupe.Key(row.Student.Name, row.Student.TeamName)
		if seen.SeenAndRecord(ctx, key) {
			report.Duplicates++
			report.Issues = append(report.Issues, types.ImportIssue{Line: row.Line, Reason: "repeated earlier in the file"})
			continue
		}

		_, err := s.addLocked(ctx, row.Student)
		var verr *model.ValidationError
		switch {
		case err == nil:
			report.Added++
		case errors.Is(err, ErrDuplicateStudent):
			report.Duplicates++
			report.Issues = append(report.Issues, types.ImportIssue{Line: row.Line, Reason: "already on the roster"})
		case errors.As(err, &verr):
			seen.Unrecord(ctx, key)
			report.Failed++
			report.Issues = append(report.Issues, types.ImportIssue{Line: row.Line, Reason: verr.Error()})
		default:
			s.writeMu.Unlock()
			s.logger.Error(ctx, "import aborted",
				logger.Int("line", row.Line),
				logger.Int("added", report.Added),
				logger.Error(err),
			)
			recordImport(report)
			s.refreshGauges(ctx)
			return report, err
		}
	}
	s.writeMu.Unlock()

	recordImport(report)
	s.refreshGauges(ctx)
	s.logger.Info(ctx, "import finished",
		logger.Int("added", report.Added),
		logger.Int("duplicates", report.Duplicates),
		logger.Int("skipped", report.Skipped),
		logger.Int("failed", report.Failed),
		logger.String("by", sess.UserID),
	)
	return report, nil
}

func recordImport(r types.ImportReport) {
	_ = metrics.RecordImportRows(metrics.OutcomeAdded, r.Added)
	_ = metrics.RecordImportRows(metrics.OutcomeDuplicate, r.Duplicates)
	_ = metrics.RecordImportRows(metrics.OutcomeSkipped, r.Skipped)
	_ = metrics.RecordImportRows(metrics.OutcomeFailed, r.Failed)
}
