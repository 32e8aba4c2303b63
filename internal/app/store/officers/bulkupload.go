// internal/app/store/officers/bulkupload.go
package officerstore

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dalemusser/surveytrack/internal/app/store/coordinatorassign"
	userstore "github.com/dalemusser/surveytrack/internal/app/store/users"
	"github.com/dalemusser/surveytrack/internal/app/system/csvutil"
	"github.com/dalemusser/surveytrack/internal/app/system/normalize"
	"github.com/dalemusser/surveytrack/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// uploadWorkers bounds the fan-out for one bulk upload batch.
const uploadWorkers = 8

// Entry is one classified row in a bulk upload result.
type Entry struct {
	Email  string `json:"email"`
	Code   string `json:"code,omitempty"`
	Line   int    `json:"line"`
	Reason string `json:"reason,omitempty"`

	// User is the resolved account, present on accepted rows.
	User *models.User `json:"user,omitempty"`
}

// Result partitions an upload batch the way the dashboards consume it:
// every input row lands in exactly one of the two buckets.
type Result struct {
	Duplicates    DuplicateBucket    `json:"duplicates"`
	NonDuplicates NonDuplicateBucket `json:"nonDuplicates"`
}

// DuplicateBucket holds the rejected rows: officers already assigned to
// the project plus rows whose email has no matching account.
type DuplicateBucket struct {
	Total int     `json:"totalDuplicates"`
	Data  []Entry `json:"data"`
}

// NonDuplicateBucket holds the accepted rows with their resolved
// accounts.
type NonDuplicateBucket struct {
	Total int     `json:"totalNonDuplicates"`
	Data  []Entry `json:"data"`
}

// BatchError aggregates the rows that failed with real errors. The rest
// of the batch still went through; callers report both.
type BatchError struct {
	Failures []RowFailure
}

// RowFailure is one row that could not be processed.
type RowFailure struct {
	Line  int    `json:"line"`
	Email string `json:"email"`
	Err   string `json:"error"`
}

func (e *BatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d row(s) failed:", len(e.Failures))
	for _, f := range e.Failures {
		fmt.Fprintf(&b, " line %d (%s): %s;", f.Line, f.Email, f.Err)
	}
	return b.String()
}

// Uploader runs the officer bulk-ingestion pipeline: membership check
// against the user directory, insert into the role's officer
// collection, and merge into the project's coordinator email lists.
type Uploader struct {
	Officers    *Store
	Users       *userstore.Store
	Assignments *coordinatorassign.Store
	Log         *zap.Logger
}

type rowOutcome struct {
	entry Entry
	dup   bool
	err   error
}

// Upload processes one parsed CSV batch for a role. Rows fan out across
// a bounded worker pool; the result preserves input order within each
// bucket. Row-level errors never abort the batch: they are aggregated
// into a *BatchError returned alongside the partial Result.
func (u *Uploader) Upload(ctx context.Context, role models.Role, masterProjectID, surveyAdmin string, rows []csvutil.OfficerRow) (Result, error) {
	batchID := uuid.NewString()
	log := u.Log.With(
		zap.String("batch_id", batchID),
		zap.String("role", string(role)),
		zap.String("master_project_id", masterProjectID),
		zap.Int("rows", len(rows)),
	)
	log.Info("officer bulk upload started")

	outcomes := make([]rowOutcome, len(rows))
	var wg sync.WaitGroup
	sem := make(chan struct{}, uploadWorkers)

	for i, row := range rows {
		wg.Add(1)
		go func(i int, row csvutil.OfficerRow) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			outcomes[i] = u.processRow(ctx, role, masterProjectID, surveyAdmin, row)
		}(i, row)
	}
	wg.Wait()

	var res Result
	var acceptedEmails []string
	var failures []RowFailure
	for _, o := range outcomes {
		switch {
		case o.err != nil:
			failures = append(failures, RowFailure{Line: o.entry.Line, Email: o.entry.Email, Err: o.err.Error()})
		case o.dup:
			res.Duplicates.Data = append(res.Duplicates.Data, o.entry)
		default:
			res.NonDuplicates.Data = append(res.NonDuplicates.Data, o.entry)
			acceptedEmails = append(acceptedEmails, o.entry.Email)
		}
	}
	res.Duplicates.Total = len(res.Duplicates.Data)
	res.NonDuplicates.Total = len(res.NonDuplicates.Data)

	// One merge for the whole batch; $addToSet keeps the lists distinct.
	if len(acceptedEmails) > 0 {
		if err := u.Assignments.AddEmails(ctx, masterProjectID, surveyAdmin, role, acceptedEmails); err != nil {
			log.Error("coordinator assignment merge failed", zap.Error(err))
			failures = append(failures, RowFailure{Err: "coordinator assignment merge: " + err.Error()})
		}
	}

	log.Info("officer bulk upload finished",
		zap.Int("accepted", res.NonDuplicates.Total),
		zap.Int("duplicates", res.Duplicates.Total),
		zap.Int("failed", len(failures)),
	)
	if len(failures) > 0 {
		return res, &BatchError{Failures: failures}
	}
	return res, nil
}

func (u *Uploader) processRow(ctx context.Context, role models.Role, masterProjectID, surveyAdmin string, row csvutil.OfficerRow) rowOutcome {
	entry := Entry{
		Email: normalize.Email(row.Email),
		Code:  normalize.Code(row.Code),
		Line:  row.Line,
	}

	usr, err := u.Users.GetByEmailAndRole(ctx, entry.Email, role)
	if err != nil {
		if err == userstore.ErrNotFound {
			entry.Reason = "no account with this email and role"
			return rowOutcome{entry: entry, dup: true}
		}
		return rowOutcome{entry: entry, err: err}
	}

	_, err = u.Officers.Insert(ctx, role, models.Officer{
		MasterProjectID: masterProjectID,
		SurveyAdmin:     surveyAdmin,
		Email:           entry.Email,
		Code:            entry.Code,
	})
	if err != nil {
		if err == ErrDuplicate {
			entry.Reason = "already assigned to this project"
			return rowOutcome{entry: entry, dup: true}
		}
		return rowOutcome{entry: entry, err: err}
	}

	entry.User = &usr
	return rowOutcome{entry: entry}
}
