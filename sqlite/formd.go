package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/edgar"
	"github.com/google/uuid"
	"github.com/ncruces/go-sqlite3"
)

// Compile-time interface verification.
var _ edgar.FormDService = (*FormDService)(nil)

// FormDService implements edgar.FormDService using SQLite.
type FormDService struct {
	db *DB
}

// NewFormDService creates a new FormDService.
func NewFormDService(db *DB) *FormDService {
	return &FormDService{db: db}
}

const formDColumns = `id, source_path, content_hash,
	company_conformed_name, central_index_key, irs_number, state_of_incorporation, fiscal_year_end,
	form_type, sec_act, sec_file_number, film_number,
	industry_group_type, investment_fund_type, is_40_act,
	total_offering_amount, total_amount_sold, total_remaining, clarification_of_response,
	parsed_at`

// CreateFormD stores a new record.
func (s *FormDService) CreateFormD(ctx context.Context, rec *edgar.FormDRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	rec.ParsedAt = time.Now().UTC().Truncate(time.Second)

	f := rec.FormD
	var fundType sql.NullString
	var is40Act sql.NullBool
	if info := f.IndustryGroup.InvestmentFundInfo; info != nil {
		fundType = sql.NullString{String: info.InvestmentFundType, Valid: true}
		is40Act = sql.NullBool{Bool: info.Is40Act, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO form_d_filings (`+formDColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.SourcePath, rec.ContentHash,
		f.CompanyData.CompanyConformedName, f.CompanyData.CentralIndexKey, f.CompanyData.IRSNumber,
		f.CompanyData.StateOfIncorporation, f.CompanyData.FiscalYearEnd,
		f.FilingValues.FormType, nullString(f.FilingValues.SecAct), nullString(f.FilingValues.SecFileNumber),
		nullString(f.FilingValues.FilmNumber),
		f.IndustryGroup.IndustryGroupType, fundType, is40Act,
		f.OfferingSalesAmounts.TotalOfferingAmount, f.OfferingSalesAmounts.TotalAmountSold,
		f.OfferingSalesAmounts.TotalRemaining, f.OfferingSalesAmounts.ClarificationOfResponse,
		rec.ParsedAt.Format(time.RFC3339))

	if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) {
		return edgar.Errorf(edgar.ECONFLICT, "form D with content hash %s already stored", rec.ContentHash)
	}
	return err
}

// FindFormDByID retrieves a record by ID.
func (s *FormDService) FindFormDByID(ctx context.Context, id string) (*edgar.FormDRecord, error) {
	recs, err := s.FindFormDs(ctx, edgar.FormDFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, edgar.Errorf(edgar.ENOTFOUND, "form D not found")
	}
	return recs[0], nil
}

// FindFormDs retrieves records matching the filter, newest first.
func (s *FormDService) FindFormDs(ctx context.Context, filter edgar.FormDFilter) ([]*edgar.FormDRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + formDColumns + " FROM form_d_filings WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.CentralIndexKey != nil {
		query.WriteString(" AND central_index_key = ?")
		args = append(args, *filter.CentralIndexKey)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY parsed_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := []*edgar.FormDRecord{}
	for rows.Next() {
		rec, err := scanFormD(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// DeleteFormD permanently removes a record.
func (s *FormDService) DeleteFormD(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM form_d_filings WHERE id = ?", id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return edgar.Errorf(edgar.ENOTFOUND, "form D not found")
	}
	return nil
}

func scanFormD(rows *sql.Rows) (*edgar.FormDRecord, error) {
	var rec edgar.FormDRecord
	var f edgar.FormD
	var secAct, secFileNumber, filmNumber, fundType sql.NullString
	var is40Act sql.NullBool
	var parsedAt string

	if err := rows.Scan(&rec.ID, &rec.SourcePath, &rec.ContentHash,
		&f.CompanyData.CompanyConformedName, &f.CompanyData.CentralIndexKey, &f.CompanyData.IRSNumber,
		&f.CompanyData.StateOfIncorporation, &f.CompanyData.FiscalYearEnd,
		&f.FilingValues.FormType, &secAct, &secFileNumber, &filmNumber,
		&f.IndustryGroup.IndustryGroupType, &fundType, &is40Act,
		&f.OfferingSalesAmounts.TotalOfferingAmount, &f.OfferingSalesAmounts.TotalAmountSold,
		&f.OfferingSalesAmounts.TotalRemaining, &f.OfferingSalesAmounts.ClarificationOfResponse,
		&parsedAt); err != nil {
		return nil, err
	}

	f.FilingValues.SecAct = stringPtr(secAct)
	f.FilingValues.SecFileNumber = stringPtr(secFileNumber)
	f.FilingValues.FilmNumber = stringPtr(filmNumber)
	if fundType.Valid || is40Act.Valid {
		f.IndustryGroup.InvestmentFundInfo = &edgar.InvestmentFundInfo{
			InvestmentFundType: fundType.String,
			Is40Act:            is40Act.Bool,
		}
	}

	var err error
	if rec.ParsedAt, err = parseRFC3339(parsedAt, "parsed_at"); err != nil {
		return nil, err
	}
	rec.FormD = &f
	return &rec, nil
}
