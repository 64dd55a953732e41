package dataset

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"findash/internal/core"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteSource reads the dataset from a local SQLite database. The
// database is opened, migrated, read in full and closed again inside a
// single Load call.
type SQLiteSource struct {
	dbPath string
}

func NewSQLiteSource(dbPath string) *SQLiteSource {
	return &SQLiteSource{dbPath: dbPath}
}

func (s *SQLiteSource) Load(ctx context.Context) (core.AppData, error) {
	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return core.AppData{}, fmt.Errorf("open sqlite database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return core.AppData{}, fmt.Errorf("ping database: %w", err)
	}
	if err := runMigrations(s.dbPath); err != nil {
		return core.AppData{}, err
	}

	var data core.AppData
	if data.User, err = loadUser(ctx, db); err != nil {
		return core.AppData{}, err
	}
	if data.Transactions, err = loadTransactions(ctx, db); err != nil {
		return core.AppData{}, err
	}
	if data.SavingsPots, err = loadSavingsPots(ctx, db); err != nil {
		return core.AppData{}, err
	}
	if data.Budgets, err = loadBudgets(ctx, db); err != nil {
		return core.AppData{}, err
	}
	if data.RecurringBills, err = loadRecurringBills(ctx, db); err != nil {
		return core.AppData{}, err
	}

	if err := data.Validate(); err != nil {
		return core.AppData{}, fmt.Errorf("validate sqlite dataset: %w", err)
	}
	return data, nil
}

func runMigrations(dbPath string) error {
	// Separate connection: the migrate driver owns and closes the
	// database handle it is given.
	migrateDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer migrateDB.Close()

	driver, err := sqlite.WithInstance(migrateDB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite driver: %w", err)
	}

	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", d, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func loadUser(ctx context.Context, db *sql.DB) (core.User, error) {
	var u core.User
	row := db.QueryRowContext(ctx, `SELECT name, currency FROM users WHERE id = 1`)
	if err := row.Scan(&u.Name, &u.Currency); err != nil {
		return core.User{}, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}

func loadTransactions(ctx context.Context, db *sql.DB) ([]core.Transaction, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, date, description, category, amount_cents, type
		FROM transactions ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			t    core.Transaction
			date string
		)
		if err := rows.Scan(&t.ID, &date, &t.Description, &t.Category, &t.Amount.Cents, &t.Type); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if t.Date, err = parseDate(date); err != nil {
			return nil, fmt.Errorf("transaction %s: %w", t.ID, err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

func loadSavingsPots(ctx context.Context, db *sql.DB) ([]core.SavingsPot, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, goal_cents, current_cents, target_date, icon
		FROM savings_pots ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query savings pots: %w", err)
	}
	defer rows.Close()

	var out []core.SavingsPot
	for rows.Next() {
		var (
			p      core.SavingsPot
			target sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Goal.Cents, &p.CurrentAmount.Cents, &target, &p.Icon); err != nil {
			return nil, fmt.Errorf("scan savings pot: %w", err)
		}
		if target.Valid && target.String != "" {
			ts, err := parseDate(target.String)
			if err != nil {
				return nil, fmt.Errorf("savings pot %s: %w", p.ID, err)
			}
			p.TargetDate = &ts
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate savings pots: %w", err)
	}
	return out, nil
}

func loadBudgets(ctx context.Context, db *sql.DB) ([]core.Budget, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, category, amount_cents, spent_cents, period, start_date, end_date, icon
		FROM budgets ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query budgets: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		var (
			b          core.Budget
			start, end string
		)
		if err := rows.Scan(&b.ID, &b.Name, &b.Category, &b.Amount.Cents, &b.SpentAmount.Cents,
			&b.Period, &start, &end, &b.Icon); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		if b.StartDate, err = parseDate(start); err != nil {
			return nil, fmt.Errorf("budget %s: %w", b.ID, err)
		}
		if b.EndDate, err = parseDate(end); err != nil {
			return nil, fmt.Errorf("budget %s: %w", b.ID, err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budgets: %w", err)
	}
	return out, nil
}

func loadRecurringBills(ctx context.Context, db *sql.DB) ([]core.RecurringBill, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, category, amount_cents, due_date_description, next_due_date, status
		FROM recurring_bills ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query recurring bills: %w", err)
	}
	defer rows.Close()

	var out []core.RecurringBill
	for rows.Next() {
		var (
			b   core.RecurringBill
			due string
		)
		if err := rows.Scan(&b.ID, &b.Name, &b.Category, &b.Amount.Cents,
			&b.DueDateDescription, &due, &b.Status); err != nil {
			return nil, fmt.Errorf("scan recurring bill: %w", err)
		}
		if b.NextDueDate, err = parseDate(due); err != nil {
			return nil, fmt.Errorf("recurring bill %s: %w", b.ID, err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recurring bills: %w", err)
	}
	return out, nil
}

// parseDate accepts full RFC 3339 timestamps and bare dates, which is
// what the seed tooling writes.
func parseDate(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	ts, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return ts, nil
}
