// Package backend builds the storage and messaging stack selected by
// configuration and wires the application services on top of it.
package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"registro/internal/config"
	"registro/internal/events"
	"registro/internal/ledger"
	"registro/internal/services"
	"registro/internal/store"
	"registro/internal/store/csvstore"
	"registro/internal/store/memstore"
	"registro/internal/store/sqlitestore"
)

// Type selects the record store implementation.
type Type string

const (
	MemoryBackend Type = "memory"
	CSVBackend    Type = "csv"
	SQLiteBackend Type = "sqlite"
)

func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, CSVBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// App bundles the wired services.
type App struct {
	Freelance   *services.FreelanceService
	Income      *services.IncomeService
	Expenses    *services.ExpenseService
	Investments *services.InvestmentService
	Loans       *services.LoanService
	Reports     *services.ReportService
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result contains the wired application and its cleanup function.
type Result struct {
	App     *App
	Cleanup CleanupFunc
}

// Build creates the store for the configured backend, the optional events
// client, and the full service graph.
func Build(cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	st, err := buildStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	var ev *events.Client
	if cfg.AMQPURL != "" {
		ev, err = events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
			ev = nil
		} else {
			logger.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	app := Wire(st, ev, cfg.Members)

	consumeCtx, stopConsuming := context.WithCancel(context.Background())
	if ev != nil {
		go func() {
			err := ev.Consume(consumeCtx, app.HandleLedgerEvent)
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("Ledger event consumer stopped", "error", err)
			}
		}()
	}

	cleanup := func() error {
		stopConsuming()
		if err := ev.Close(); err != nil {
			logger.Warn("Failed to close AMQP client", "error", err)
		}
		return st.Close()
	}
	return &Result{App: app, Cleanup: cleanup}, nil
}

// Wire assembles the service graph over an already-built store. Tests use it
// directly with a memory store and no events client.
func Wire(st store.Store, ev *events.Client, members []string) *App {
	freelance := ledger.NewFreelance(st)
	incomes := ledger.NewIncome(st)
	expenses := ledger.NewExpense(st)
	investments := ledger.NewInvestment(st)
	loans := ledger.NewLoan(st)

	incomeService := services.NewIncomeService(incomes, ev)
	return &App{
		Freelance:   services.NewFreelanceService(freelance, ev),
		Income:      incomeService,
		Expenses:    services.NewExpenseService(expenses, ev),
		Investments: services.NewInvestmentService(investments, ev),
		Loans:       services.NewLoanService(loans, incomeService, ev),
		Reports:     services.NewReportService(freelance, incomes, expenses, investments, members),
	}
}

// HandleLedgerEvent drops the cached view of the ledger an event names, so
// instances sharing a store pick up each other's writes on the next read.
// Events for unknown ledgers are logged and dropped, never requeued.
func (a *App) HandleLedgerEvent(ev *events.LedgerEvent) error {
	switch ev.Ledger {
	case store.Freelance.Name:
		a.Freelance.Refresh()
	case store.FamilyIncome.Name:
		a.Income.Refresh()
	case store.Expenses.Name:
		a.Expenses.Refresh()
	case store.Investments.Name:
		a.Investments.Refresh()
	case store.Loans.Name:
		a.Loans.Refresh()
	default:
		slog.Warn("Ignoring event for unknown ledger", "ledger", ev.Ledger, "action", ev.Action)
	}
	return nil
}

func buildStore(cfg *config.Config, logger *slog.Logger) (store.Store, error) {
	switch Type(cfg.DataBackend) {
	case MemoryBackend:
		logger.Info("Initialized memory backend")
		return memstore.New(), nil

	case CSVBackend:
		st, err := csvstore.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initialize csv backend: %w", err)
		}
		logger.Info("Initialized CSV backend", "data_directory", cfg.DataDir)
		return st, nil

	case SQLiteBackend:
		st, err := sqlitestore.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return st, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.DataBackend)
	}
}
