package store

import (
	"context"
	"fmt"
	"time"

	"staffdesk/internal/utils"
	"staffdesk/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
)

const (
	billTableName    = "staffdesk.bills"
	billNumberSeq    = "staffdesk.bill_numbers"
	billNumberFormat = "INV-%06d"
)

var billColumns = utils.StructTagValues(types.Bill{})

type BillRepository struct {
	db DB
}

func NewBillRepository(db DB) *BillRepository {
	return &BillRepository{db: db}
}

func (r *BillRepository) Bill(ctx context.Context, billID string) (*types.Bill, error) {

	query, args, err := psql().Select(billColumns...).From(billTableName).
		Where(sq.Eq{"id": billID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate bill query: %w", err)
	}

	var bill = new(types.Bill)
	err = pgxscan.Get(ctx, r.db, bill, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrBillNotFound
		}
		return nil, fmt.Errorf("failed to fetch bill: %w", err)
	}

	return bill, nil
}

func (r *BillRepository) Bills(ctx context.Context, clientID *string, status *types.BillStatus) ([]*types.Bill, error) {

	builder := psql().Select(billColumns...).From(billTableName).
		OrderBy("created_at desc")

	if clientID != nil {
		builder = builder.Where(sq.Eq{"client_id": *clientID})
	}
	if status != nil {
		builder = builder.Where(sq.Eq{"status": *status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate bills query: %w", err)
	}

	var bills = make([]*types.Bill, 0)
	err = pgxscan.Select(ctx, r.db, &bills, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bills: %w", err)
	}

	return bills, nil
}

// CreateBill assigns the next sequential bill number and inserts the row.
// Totals must already be computed by the caller.
func (r *BillRepository) CreateBill(ctx context.Context, bill *types.Bill) error {

	number, err := r.nextBillNumber(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	bill.ID = utils.NanoID()
	bill.BillNumber = number
	bill.CreatedAt = now
	bill.UpdatedAt = now

	billMap := utils.StructToMap(bill)

	query, args, err := psql().Insert(billTableName).SetMap(billMap).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert bill query: %w", err)
	}

	_, err = r.db.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create bill")
}

// UpdateBill persists everything except the bill number, which is immutable
// once assigned.
func (r *BillRepository) UpdateBill(ctx context.Context, billID string, bill *types.Bill) error {

	bill.ID = billID
	bill.UpdatedAt = time.Now()

	billMap := utils.StructToMap(bill)
	delete(billMap, "bill_number")
	delete(billMap, "created_at")

	query, args, err := psql().Update(billTableName).SetMap(billMap).
		Where(sq.Eq{"id": billID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update bill query for bill %s: %w", billID, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return utils.ErrorWrapOrNil(err, "failed to update bill")
	}

	if tag.RowsAffected() == 0 {
		return types.ErrBillNotFound
	}

	return nil
}

// MarkOverdue flips every pending bill whose due date has passed to Overdue.
// Returns the number of bills touched.
func (r *BillRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {

	query, args, err := psql().Update(billTableName).
		SetMap(map[string]any{
			"status":     types.BillStatusOverdue,
			"updated_at": asOf,
		}).
		Where(sq.Eq{"status": types.BillStatusPending}).
		Where(sq.Lt{"due_date": asOf}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate overdue sweep query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, utils.ErrorWrapOrNil(err, "failed to sweep overdue bills")
	}

	return tag.RowsAffected(), nil
}

func (r *BillRepository) nextBillNumber(ctx context.Context) (string, error) {
	var n int64
	if err := r.db.QueryRow(ctx, fmt.Sprintf("select nextval('%s')", billNumberSeq)).Scan(&n); err != nil {
		return "", fmt.Errorf("failed to fetch next bill number: %w", err)
	}

	return fmt.Sprintf(billNumberFormat, n), nil
}
