package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

// ============================================================
// StrategyRepository Tests
// ============================================================

var strategyTestColumns = []string{
	"id", "leader_id", "account_id", "name", "risk_level", "trade_type",
	"total_return", "win_rate", "average_profit", "copier_ids", "created_at",
}

func TestStrategyRepositoryGetByLeaderID(t *testing.T) {
	now := time.Now()

	t.Run("strategies with and without performance", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("failed to create mock: %v", err)
		}
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM strategies`).
			WithArgs("leader-1").
			WillReturnRows(sqlmock.NewRows(strategyTestColumns).
				AddRow("strat-1", "leader-1", "acc-1", "USD Scalping", "low", "scalping",
					18.5, 80.0, 1.2, "{copier-1,copier-2}", now).
				AddRow("strat-2", "leader-1", "acc-1", "BTC Swing", "high", "swing_trading",
					nil, nil, nil, "{}", now))

		repo := NewStrategyRepository(db)
		strategies, err := repo.GetByLeaderID(context.Background(), "leader-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(strategies) != 2 {
			t.Fatalf("expected 2 strategies, got %d", len(strategies))
		}
		if strategies[0].Performance == nil {
			t.Fatal("expected performance on first strategy")
		}
		if strategies[0].Performance.WinRate != 80.0 {
			t.Errorf("expected win rate 80, got %f", strategies[0].Performance.WinRate)
		}
		if len(strategies[0].CopierIDs) != 2 {
			t.Errorf("expected 2 copiers, got %d", len(strategies[0].CopierIDs))
		}
		if strategies[1].Performance != nil {
			t.Error("expected no performance on second strategy")
		}
		if strategies[1].TradeType != "swing_trading" {
			t.Errorf("expected swing_trading, got %s", strategies[1].TradeType)
		}
	})

	t.Run("no strategies", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("failed to create mock: %v", err)
		}
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM strategies`).
			WithArgs("leader-2").
			WillReturnRows(sqlmock.NewRows(strategyTestColumns))

		repo := NewStrategyRepository(db)
		strategies, err := repo.GetByLeaderID(context.Background(), "leader-2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(strategies) != 0 {
			t.Errorf("expected no strategies, got %d", len(strategies))
		}
	})

	t.Run("database error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("failed to create mock: %v", err)
		}
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM strategies`).
			WithArgs("leader-1").
			WillReturnError(errors.New("connection reset"))

		repo := NewStrategyRepository(db)
		_, err = repo.GetByLeaderID(context.Background(), "leader-1")
		if err == nil {
			t.Error("expected error, got nil")
		}
	})
}

func TestStrategyRepositoryGetByAccountID(t *testing.T) {
	now := time.Now()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM strategies`).
		WithArgs("acc-7").
		WillReturnRows(sqlmock.NewRows(strategyTestColumns).
			AddRow("strat-9", "leader-3", "acc-7", "EUR Day", "medium", "day_trading",
				9.1, 55.0, 0.4, "{}", now))

	repo := NewStrategyRepository(db)
	strategies, err := repo.GetByAccountID(context.Background(), "acc-7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(strategies) != 1 {
		t.Fatalf("expected 1 strategy, got %d", len(strategies))
	}
	if strategies[0].AccountID != "acc-7" {
		t.Errorf("expected account acc-7, got %s", strategies[0].AccountID)
	}
}

func TestStrategyRepositoryGetAll(t *testing.T) {
	now := time.Now()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM strategies`).
		WillReturnRows(sqlmock.NewRows(strategyTestColumns).
			AddRow("strat-1", "leader-1", "acc-1", "USD Scalping", "low", "scalping",
				18.5, 80.0, 1.2, "{}", now).
			AddRow("strat-2", "leader-2", "acc-2", "GOLD Position", "medium", "position_trading",
				25.0, 61.0, 2.0, "{}", now))

	repo := NewStrategyRepository(db)
	strategies, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(strategies) != 2 {
		t.Fatalf("expected 2 strategies, got %d", len(strategies))
	}
}
