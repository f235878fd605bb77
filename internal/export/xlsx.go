// Package export renders a user's transaction history as an .xlsx workbook
// and parses such workbooks back. The workbook is a plain backup: one
// "Transactions" sheet, a header row, one row per transaction.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/hishabkhata/cashbook-server/internal/domain"
)

const SheetName = "Transactions"

var header = []string{"Date", "Type", "Category", "Account", "Amount", "Counterparty", "Note"}

var typeLabels = map[domain.TransactionType]string{
	domain.TxTypeIncome:        "Income",
	domain.TxTypeExpense:       "Expense",
	domain.TxTypeCapitalIn:     "Capital In",
	domain.TxTypeCapitalOut:    "Capital Out",
	domain.TxTypeLoanGiven:     "Loan Given",
	domain.TxTypeLoanTaken:     "Loan Taken",
	domain.TxTypeLoanCollected: "Loan Collected",
	domain.TxTypeLoanRepaid:    "Loan Repaid",
	domain.TxTypeMobileIn:      "Mobile Banking Received",
	domain.TxTypeMobileOut:     "Mobile Banking Sent",
	domain.TxTypeAdjustment:    "Adjustment",
}

// TypeLabel is the human-readable spreadsheet form of a transaction type.
func TypeLabel(t domain.TransactionType) string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return string(t)
}

// Row is one spreadsheet line. Dates use the DD/MM/YYYY display form;
// missing counterparty and note are rendered "-".
type Row struct {
	Date         string
	Type         string
	Category     string
	Account      string
	Amount       decimal.Decimal
	Counterparty string
	Note         string
}

// BuildRows flattens transactions into spreadsheet rows, resolving account
// names through the caller's account list. Transactions keep their input
// order; the list endpoint already serves them newest-first.
func BuildRows(txs []domain.Transaction, accounts []domain.Account) []Row {
	names := make(map[uuid.UUID]string, len(accounts))
	for _, a := range accounts {
		names[a.ID] = a.Name
	}

	rows := make([]Row, 0, len(txs))
	for _, t := range txs {
		row := Row{
			Date:         displayDate(t.Date),
			Type:         TypeLabel(t.Type),
			Category:     t.Category,
			Account:      names[t.AccountID],
			Amount:       t.Amount,
			Counterparty: "-",
			Note:         "-",
		}
		if t.Counterparty != nil && *t.Counterparty != "" {
			row.Counterparty = *t.Counterparty
		}
		if t.Note != "" {
			row.Note = t.Note
		}
		rows = append(rows, row)
	}
	return rows
}

// Write renders rows as an .xlsx workbook on w.
func Write(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", SheetName)

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("Write: header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("Write: cell name: %w", err)
		}
		// amounts are written as text so the cell holds the exact decimal
		values := []any{
			row.Date, row.Type, row.Category, row.Account,
			row.Amount.String(), row.Counterparty, row.Note,
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("Write: row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("Write: %w", err)
	}
	return nil
}

// Read parses a workbook produced by Write back into rows, skipping the
// header.
func Read(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("Read: open: %w", err)
	}
	defer f.Close()

	cells, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("Read: rows: %w", err)
	}
	if len(cells) == 0 {
		return nil, nil
	}

	rows := make([]Row, 0, len(cells)-1)
	for i, line := range cells[1:] {
		// GetRows trims trailing empty cells.
		padded := make([]string, len(header))
		copy(padded, line)

		amount, err := decimal.NewFromString(padded[4])
		if err != nil {
			return nil, fmt.Errorf("Read: row %d amount %q: %w", i+2, padded[4], err)
		}
		rows = append(rows, Row{
			Date:         padded[0],
			Type:         padded[1],
			Category:     padded[2],
			Account:      padded[3],
			Amount:       amount,
			Counterparty: padded[5],
			Note:         padded[6],
		})
	}
	return rows, nil
}

// displayDate turns a stored YYYY-MM-DD date into the DD/MM/YYYY form used
// in the workbook. Unparseable input passes through untouched.
func displayDate(date string) string {
	d, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return date
	}
	return d.Format("02/01/2006")
}
