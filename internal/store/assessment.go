package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

var assessmentColumnNames = func() []string {
	names := make([]string, len(assessmentsColumns))
	for i, c := range assessmentsColumns {
		names[i] = c.Name
	}
	return names
}()

type assessmentRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *assessmentRepo) Append(ctx context.Context, data AssessmentData) (*Assessment, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return nil, err
	}

	a := &Assessment{
		ID:             uuid.NewString(),
		Sequence:       seqNum,
		Timestamp:      time.Now().UTC(),
		AssessmentData: data,
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(assessmentsTable).
		Columns(assessmentColumnNames...).
		Values(
			a.ID, a.Sequence, a.Timestamp, a.Reference,
			a.Age, a.ChronicConditions, a.AccompanimentRequests, a.MedicationRequests,
			a.AppointmentRequests, a.ShoppingRequests, a.FamilySupport, a.RequestedHours,
			a.Probability, a.Status, a.Rule, a.Profile, a.Specialty, a.HourlyRate, a.Total,
			a.ModelVersion, a.ModelFingerprint,
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("save assessment: %w", err)
	}
	return a, nil
}

func (r *assessmentRepo) List(ctx context.Context, opts QueryOpts) ([]Assessment, error) {
	var extra []*entsql.Predicate
	if opts.Status != "" {
		extra = append(extra, entsql.EQ("status", opts.Status))
	}
	sel := entsql.Dialect(dialect.SQLite).
		Select(assessmentColumnNames...).
		From(entsql.Table(assessmentsTable))
	query, args := applyOpts(sel, opts, extra...).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	defer rows.Close()

	var out []Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *assessmentRepo) Get(ctx context.Context, id string) (*Assessment, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	query, args := entsql.Dialect(dialect.SQLite).
		Select(assessmentColumnNames...).
		From(entsql.Table(assessmentsTable)).
		Where(entsql.HasPrefix("id", id)).
		Limit(2).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query assessment: %w", err)
	}
	defer rows.Close()

	var found []*Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("assessment %q: %w", id, ErrNotFound)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("assessment id %q is ambiguous", id)
	}
}

func (r *assessmentRepo) Summary(ctx context.Context) (*AssessmentSummary, error) {
	b := entsql.Dialect(dialect.SQLite)
	sum := &AssessmentSummary{ByStatus: map[string]int{}}

	query, args := b.Select(entsql.Count("*"), "COALESCE(AVG(`probability`), 0)").
		From(entsql.Table(assessmentsTable)).
		Query()
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&sum.Total, &sum.MeanProbability); err != nil {
		return nil, fmt.Errorf("count assessments: %w", err)
	}

	query, args = b.Select("status", entsql.Count("*")).
		From(entsql.Table(assessmentsTable)).
		GroupBy("status").
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		sum.ByStatus[status] = n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	query, args = b.Select("profile", entsql.Count("*"), entsql.Sum("total")).
		From(entsql.Table(assessmentsTable)).
		Where(entsql.NEQ("profile", "")).
		GroupBy("profile").
		OrderBy(entsql.Desc(entsql.Sum("total"))).
		Query()
	rows, err = r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count by profile: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var pc ProfileCount
		if err := rows.Scan(&pc.Profile, &pc.Count, &pc.Revenue); err != nil {
			return nil, fmt.Errorf("scan profile count: %w", err)
		}
		sum.ByProfile = append(sum.ByProfile, pc)
		sum.QuotedRevenue += pc.Revenue
	}
	return sum, rows.Err()
}

func scanAssessment(rows *sql.Rows) (*Assessment, error) {
	var a Assessment
	err := rows.Scan(
		&a.ID, &a.Sequence, &a.Timestamp, &a.Reference,
		&a.Age, &a.ChronicConditions, &a.AccompanimentRequests, &a.MedicationRequests,
		&a.AppointmentRequests, &a.ShoppingRequests, &a.FamilySupport, &a.RequestedHours,
		&a.Probability, &a.Status, &a.Rule, &a.Profile, &a.Specialty, &a.HourlyRate, &a.Total,
		&a.ModelVersion, &a.ModelFingerprint,
	)
	if err != nil {
		return nil, fmt.Errorf("scan assessment: %w", err)
	}
	return &a, nil
}
