// Package dashboard persists completed-trade records and aggregates them
// into a performance report. It only consumes what the bot produces; it
// never feeds back into trading decisions.
package dashboard

import (
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/evdnx/gotrade/logger"
	"github.com/evdnx/gotrade/types"
)

type Store struct {
	db  *sql.DB
	log logger.Logger
}

// NewStore opens (creating if needed) the trade database at dbPath.
func NewStore(dbPath string, log logger.Logger) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create db directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trade db: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping trade db: %w", err)
	}
	s := &Store{db: db, log: log}
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		log.Warn("wal_mode_unavailable", logger.Err(err))
	}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS trades (
			id          TEXT PRIMARY KEY,
			symbol      TEXT NOT NULL,
			side        TEXT NOT NULL,
			entry_price REAL NOT NULL,
			exit_price  REAL,
			amount      REAL NOT NULL,
			entry_time  INTEGER NOT NULL,
			exit_time   INTEGER,
			fee         REAL DEFAULT 0,
			pnl         REAL,
			pnl_percent REAL,
			strategy    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_symbol ON trades (symbol)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_time ON trades (entry_time)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to init trades schema: %w", err)
		}
	}
	return nil
}

// RecordTrade upserts one trade. PnL columns are derived here when the
// record carries an exit price, so open trades store NULLs.
func (s *Store) RecordTrade(rec types.TradeRecord) error {
	if rec.ID == "" || rec.Symbol == "" {
		return fmt.Errorf("trade record missing id or symbol")
	}
	var exitPrice, exitTime, pnl, pnlPercent any
	if rec.ExitPrice != nil {
		exitPrice = *rec.ExitPrice
		pnl = types.PnL(rec.EntryPrice, *rec.ExitPrice, rec.Amount)
		if rec.EntryPrice != 0 {
			pnlPercent = (*rec.ExitPrice/rec.EntryPrice - 1) * 100
		}
	}
	if rec.ExitTime != nil {
		exitTime = rec.ExitTime.Unix()
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO trades
		(id, symbol, side, entry_price, exit_price, amount, entry_time, exit_time, fee, pnl, pnl_percent, strategy)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Symbol, string(rec.Side), rec.EntryPrice, exitPrice,
		rec.Amount, rec.EntryTime.Unix(), exitTime, rec.Fee, pnl, pnlPercent, rec.Strategy,
	)
	if err != nil {
		return fmt.Errorf("failed to record trade %s: %w", rec.ID, err)
	}
	return nil
}

// Trade is one persisted row. PnL fields are nil for trades still open.
type Trade struct {
	ID         string
	Symbol     string
	Side       string
	EntryPrice float64
	ExitPrice  *float64
	Amount     float64
	EntryTime  time.Time
	ExitTime   *time.Time
	Fee        float64
	PnL        *float64
	PnLPercent *float64
	Strategy   string
}

// Trades returns all trades entered at or after since, oldest first.
func (s *Store) Trades(since time.Time) ([]Trade, error) {
	rows, err := s.db.Query(`SELECT id, symbol, side, entry_price, exit_price, amount,
		entry_time, exit_time, fee, pnl, pnl_percent, strategy
		FROM trades WHERE entry_time >= ? ORDER BY entry_time ASC`, since.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var out []Trade
	for rows.Next() {
		var tr Trade
		var exitPrice, pnl, pnlPercent sql.NullFloat64
		var entryTime int64
		var exitTime sql.NullInt64
		var strategy sql.NullString
		if err := rows.Scan(&tr.ID, &tr.Symbol, &tr.Side, &tr.EntryPrice, &exitPrice,
			&tr.Amount, &entryTime, &exitTime, &tr.Fee, &pnl, &pnlPercent, &strategy); err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		tr.EntryTime = time.Unix(entryTime, 0).UTC()
		if exitPrice.Valid {
			v := exitPrice.Float64
			tr.ExitPrice = &v
		}
		if exitTime.Valid {
			ts := time.Unix(exitTime.Int64, 0).UTC()
			tr.ExitTime = &ts
		}
		if pnl.Valid {
			v := pnl.Float64
			tr.PnL = &v
		}
		if pnlPercent.Valid {
			v := pnlPercent.Float64
			tr.PnLPercent = &v
		}
		tr.Strategy = strategy.String
		out = append(out, tr)
	}
	return out, rows.Err()
}

// Report summarizes settled trades over the trailing window.
type Report struct {
	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	WinRate       float64 // percent
	TotalPnL      float64
	AvgPnL        float64
	MaxDrawdown   float64 // most negative running PnL sum
	ProfitFactor  float64 // gross profit / gross loss; +Inf with no losses
}

// Report aggregates the last 90 days of settled trades.
func (s *Store) Report() (Report, error) {
	trades, err := s.Trades(time.Now().AddDate(0, 0, -90))
	if err != nil {
		return Report{}, err
	}
	var rep Report
	var grossProfit, grossLoss, running float64
	for _, tr := range trades {
		if tr.PnL == nil {
			continue
		}
		pnl := *tr.PnL
		rep.TotalTrades++
		rep.TotalPnL += pnl
		switch {
		case pnl > 0:
			rep.WinningTrades++
			grossProfit += pnl
		case pnl < 0:
			rep.LosingTrades++
			grossLoss -= pnl
		}
		running += pnl
		if running < rep.MaxDrawdown {
			rep.MaxDrawdown = running
		}
	}
	if rep.TotalTrades > 0 {
		rep.WinRate = float64(rep.WinningTrades) / float64(rep.TotalTrades) * 100
		rep.AvgPnL = rep.TotalPnL / float64(rep.TotalTrades)
	}
	if grossLoss > 0 {
		rep.ProfitFactor = grossProfit / grossLoss
	} else if grossProfit > 0 {
		rep.ProfitFactor = math.Inf(1)
	}
	return rep, nil
}

func (s *Store) Close() error { return s.db.Close() }
