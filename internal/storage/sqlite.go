package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/budget/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage keeps the budget snapshot in a SQLite database.
// Each save replaces every row; the position column preserves list order.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage opens (creating if needed) the database at dbPath.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Load reads the snapshot. A database that has never been saved to yields nil, nil.
func (s *SQLiteStorage) Load(ctx context.Context) (*model.BudgetData, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	data := model.NewBudgetData()

	err := s.db.QueryRowContext(ctx,
		`SELECT savings_goal, current_user_name FROM settings WHERE id = 1`,
	).Scan(&data.SavingsGoal, &data.CurrentUser.UserName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}

	if data.Transactions, err = s.loadTransactions(ctx); err != nil {
		return nil, err
	}
	if data.Categories, err = s.loadCategories(ctx); err != nil {
		return nil, err
	}
	if data.RecurringTransactions, err = s.loadRecurring(ctx); err != nil {
		return nil, err
	}
	if data.UserProfiles, err = s.loadProfiles(ctx); err != nil {
		return nil, err
	}

	slog.Debug("loaded budget data from sqlite",
		"path", s.dbPath,
		"transactions", len(data.Transactions))
	return data, nil
}

func (s *SQLiteStorage) loadTransactions(ctx context.Context) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT description, amount, category, type, date
		FROM transactions
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []model.Transaction{}
	for rows.Next() {
		var (
			txn  model.Transaction
			date string
		)
		if err := rows.Scan(&txn.Description, &txn.Amount, &txn.Category, &txn.Type, &date); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if txn.Date, err = time.Parse(time.RFC3339Nano, date); err != nil {
			return nil, fmt.Errorf("failed to parse transaction date %q: %w", date, err)
		}
		txns = append(txns, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return txns, nil
}

func (s *SQLiteStorage) loadCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, spending_limit
		FROM categories
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.Name, &cat.SpendingLimit); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

func (s *SQLiteStorage) loadRecurring(ctx context.Context) ([]model.RecurringTransaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT description, amount, category, frequency
		FROM recurring_transactions
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring transactions: %w", err)
	}
	defer rows.Close()

	recurring := []model.RecurringTransaction{}
	for rows.Next() {
		var rt model.RecurringTransaction
		if err := rows.Scan(&rt.Description, &rt.Amount, &rt.Category, &rt.Frequency); err != nil {
			return nil, fmt.Errorf("failed to scan recurring transaction: %w", err)
		}
		recurring = append(recurring, rt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recurring transactions: %w", err)
	}
	return recurring, nil
}

func (s *SQLiteStorage) loadProfiles(ctx context.Context) ([]model.UserProfile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT user_name FROM user_profiles ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query user profiles: %w", err)
	}
	defer rows.Close()

	profiles := []model.UserProfile{}
	for rows.Next() {
		var p model.UserProfile
		if err := rows.Scan(&p.UserName); err != nil {
			return nil, fmt.Errorf("failed to scan user profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user profiles: %w", err)
	}
	return profiles, nil
}

// Save replaces the stored snapshot with data inside one transaction.
func (s *SQLiteStorage) Save(ctx context.Context, data *model.BudgetData) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBudgetData(data); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				slog.Error("failed to rollback save", "error", rbErr)
			}
		}
	}()

	for _, table := range []string{"transactions", "categories", "recurring_transactions", "user_profiles"} {
		// #nosec G202 - table names come from the fixed list above
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err = saveRows(ctx, tx, data); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO settings (id, savings_goal, current_user_name, saved_at)
		VALUES (1, ?, ?, ?)`,
		data.SavingsGoal,
		data.CurrentUser.UserName,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit save: %w", err)
	}

	slog.Debug("saved budget data to sqlite", "path", s.dbPath, "transactions", len(data.Transactions))
	return nil
}

func saveRows(ctx context.Context, tx *sql.Tx, data *model.BudgetData) error {
	for i, txn := range data.Transactions {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO transactions (position, description, amount, category, type, date)
			VALUES (?, ?, ?, ?, ?, ?)`,
			i, txn.Description, txn.Amount, txn.Category, string(txn.Type),
			txn.Date.Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("failed to insert transaction %d: %w", i+1, err)
		}
	}

	for i, cat := range data.Categories {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO categories (position, name, spending_limit)
			VALUES (?, ?, ?)`,
			i, cat.Name, cat.SpendingLimit,
		); err != nil {
			return fmt.Errorf("failed to insert category %d: %w", i+1, err)
		}
	}

	for i, rt := range data.RecurringTransactions {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO recurring_transactions (position, description, amount, category, frequency)
			VALUES (?, ?, ?, ?, ?)`,
			i, rt.Description, rt.Amount, rt.Category, string(rt.Frequency),
		); err != nil {
			return fmt.Errorf("failed to insert recurring transaction %d: %w", i+1, err)
		}
	}

	for i, p := range data.UserProfiles {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO user_profiles (position, user_name)
			VALUES (?, ?)`,
			i, p.UserName,
		); err != nil {
			return fmt.Errorf("failed to insert user profile %d: %w", i+1, err)
		}
	}

	return nil
}
