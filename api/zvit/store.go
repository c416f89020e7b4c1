package zvit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// Inserter is the single-record write port used by the import pipeline.
// *Store satisfies it; tests substitute a fake.
type Inserter interface {
	Insert(ctx context.Context, rec Record) (Record, error)
}

// Store wraps the Postgres pool for zvit_table access.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const recordColumns = `id, fio, ipn, organization, date_opened, date_first_deposit, account_status, card_status, documents, comment, created_at`

func scanRecord(row pgx.Row) (Record, error) {
	var (
		rec          Record
		opened       *time.Time
		firstDeposit *time.Time
		docs         []byte
		comment      *string
	)
	err := row.Scan(&rec.ID, &rec.FIO, &rec.IPN, &rec.Organization, &opened, &firstDeposit,
		&rec.AccountStatus, &rec.CardStatus, &docs, &comment, &rec.CreatedAt)
	if err != nil {
		return Record{}, err
	}
	if opened != nil {
		rec.DateOpened = opened.Format("2006-01-02")
	}
	if firstDeposit != nil {
		rec.DateFirstDeposit = firstDeposit.Format("2006-01-02")
	}
	if comment != nil {
		rec.Comment = *comment
	}
	if len(docs) > 0 {
		_ = json.Unmarshal(docs, &rec.Documents)
	}
	return rec, nil
}

func (s *Store) queryRecords(ctx context.Context, query string, args ...interface{}) ([]Record, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	records := make([]Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// List returns every record, newest first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	return s.queryRecords(ctx, fmt.Sprintf(`SELECT %s FROM zvit_table ORDER BY id DESC`, recordColumns))
}

// ListPage returns one page of records, newest first.
func (s *Store) ListPage(ctx context.Context, limit, offset int) ([]Record, error) {
	return s.queryRecords(ctx,
		fmt.Sprintf(`SELECT %s FROM zvit_table ORDER BY id DESC LIMIT $1 OFFSET $2`, recordColumns),
		limit, offset)
}

// ListOpenedInYear returns records whose opening date falls inside the year.
func (s *Store) ListOpenedInYear(ctx context.Context, year int) ([]Record, error) {
	from := fmt.Sprintf("%d-01-01", year)
	to := fmt.Sprintf("%d-12-31", year)
	return s.queryRecords(ctx,
		fmt.Sprintf(`SELECT %s FROM zvit_table WHERE date_opened BETWEEN $1 AND $2 ORDER BY id`, recordColumns),
		from, to)
}

// ListActivated returns records that have a first-deposit date.
func (s *Store) ListActivated(ctx context.Context) ([]Record, error) {
	return s.queryRecords(ctx,
		fmt.Sprintf(`SELECT %s FROM zvit_table WHERE date_first_deposit IS NOT NULL ORDER BY id`, recordColumns))
}

// nullableDate maps "" to NULL for DATE parameters.
func nullableDate(iso string) interface{} {
	if iso == "" {
		return nil
	}
	return iso
}

func (s *Store) Insert(ctx context.Context, rec Record) (Record, error) {
	docs, err := json.Marshal(rec.Documents)
	if err != nil {
		return Record{}, err
	}
	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO zvit_table (fio, ipn, organization, date_opened, date_first_deposit, account_status, card_status, documents, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s`, recordColumns),
		rec.FIO, rec.IPN, rec.Organization, rec.DateOpened, nullableDate(rec.DateFirstDeposit),
		rec.AccountStatus, rec.CardStatus, docs, rec.Comment)
	return scanRecord(row)
}

// Update replaces all mutable fields of the record. Last write wins; there is
// no optimistic-concurrency check.
func (s *Store) Update(ctx context.Context, id int64, rec Record) (Record, error) {
	docs, err := json.Marshal(rec.Documents)
	if err != nil {
		return Record{}, err
	}
	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE zvit_table
		SET fio=$1, ipn=$2, organization=$3, date_opened=$4, date_first_deposit=$5,
		    account_status=$6, card_status=$7, documents=$8, comment=$9
		WHERE id=$10
		RETURNING %s`, recordColumns),
		rec.FIO, rec.IPN, rec.Organization, rec.DateOpened, nullableDate(rec.DateFirstDeposit),
		rec.AccountStatus, rec.CardStatus, docs, rec.Comment, id)
	return scanRecord(row)
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM zvit_table WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteBulk removes the given ids and reports which ones actually existed.
func (s *Store) DeleteBulk(ctx context.Context, ids []int64) ([]int64, error) {
	rows, err := s.pool.Query(ctx, `DELETE FROM zvit_table WHERE id = ANY($1) RETURNING id`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	deleted := make([]int64, 0, len(ids))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		deleted = append(deleted, id)
	}
	return deleted, rows.Err()
}

// Count is used by the health endpoint as a cheap connectivity probe.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT count(*) FROM zvit_table`).Scan(&n)
	return n, err
}
