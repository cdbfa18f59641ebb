package gateway

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"retail-dashboard/internal/domain"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
)

// DefaultTable is the table queried when none is configured.
const DefaultTable = "RETAIL_SALES"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// MySQLConfig holds the connection settings of the sales database.
type MySQLConfig struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Addr     string `yaml:"addr"`
	Database string `yaml:"database"`
	Table    string `yaml:"table"`
}

// DSN renders the driver connection string. Dates are parsed into time.Time.
func (c MySQLConfig) DSN() string {
	cfg := mysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = c.Addr
	cfg.DBName = c.Database
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN()
}

// OpenMySQL opens a pool and verifies the server is reachable.
func OpenMySQL(ctx context.Context, c MySQLConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", c.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach database at %s: %w", c.Addr, err)
	}
	return db, nil
}

// MySQLTransactionRepository implements the TransactionRepository interface
// over a RETAIL_SALES table.
type MySQLTransactionRepository struct {
	db     *sql.DB
	query  string
	logger zerolog.Logger
}

// NewMySQLTransactionRepository creates a repository reading table through db.
func NewMySQLTransactionRepository(db *sql.DB, table string, logger zerolog.Logger) (*MySQLTransactionRepository, error) {
	if table == "" {
		table = DefaultTable
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &MySQLTransactionRepository{
		db:     db,
		query:  fmt.Sprintf("SELECT %s FROM `%s`", strings.Join(transactionColumns, ", "), table),
		logger: logger,
	}, nil
}

// FetchAll reads every transaction row. Rows with a NULL in any column are
// skipped and counted in a warning.
func (r *MySQLTransactionRepository) FetchAll(ctx context.Context) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, r.query)
	if err != nil {
		return nil, fmt.Errorf("error querying transactions: %w", err)
	}
	defer rows.Close()

	var (
		transactions []domain.Transaction
		skipped      int
	)
	for rows.Next() {
		var (
			id, customerID, age, quantity sql.NullInt64
			saleDate                      sql.NullTime
			gender, category              sql.NullString
			price, cogs, total            sql.NullFloat64
		)
		if err := rows.Scan(&id, &saleDate, &customerID, &gender, &age, &category, &quantity, &price, &cogs, &total); err != nil {
			return nil, fmt.Errorf("error scanning transaction: %w", err)
		}

		if !(id.Valid && saleDate.Valid && customerID.Valid && gender.Valid && age.Valid &&
			category.Valid && quantity.Valid && price.Valid && cogs.Valid && total.Valid) {
			skipped++
			continue
		}

		transactions = append(transactions, domain.Transaction{
			ID:           id.Int64,
			SaleDate:     saleDate.Time,
			CustomerID:   customerID.Int64,
			Gender:       gender.String,
			Age:          int(age.Int64),
			Category:     category.String,
			Quantity:     int(quantity.Int64),
			PricePerUnit: price.Float64,
			COGS:         cogs.Float64,
			TotalSale:    total.Float64,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	if skipped > 0 {
		r.logger.Warn().Int("skipped", skipped).Msg("skipped transactions with NULL columns")
	}
	return transactions, nil
}
