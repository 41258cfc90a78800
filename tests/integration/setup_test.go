// Package integration contains integration tests for the leader matching service.
//
// These tests verify the correct interaction between components:
// - API integration tests: full HTTP request cycle
// - WebSocket tests: connection, broadcast messaging
// - Database tests: schema, repositories, concurrent access
//
// Integration tests use build tag "integration" to separate from unit tests.
// Run with: go test -tags=integration ./tests/integration/...
package integration

import (
	"database/sql"
	"fmt"
	"log"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"copytrade/internal/api"
	"copytrade/internal/matching"
	"copytrade/internal/repository"
	"copytrade/internal/service"
	"copytrade/internal/websocket"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// TestConfig contains configuration for integration tests
type TestConfig struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
}

// TestServer encapsulates all components needed for integration testing
type TestServer struct {
	DB       *sql.DB
	Router   *mux.Router
	Server   *httptest.Server
	Hub      *websocket.Hub
	Repos    *TestRepositories
	Services *TestServices
	Cleanup  func()
}

// TestRepositories contains all repository instances for testing
type TestRepositories struct {
	User     *repository.UserRepository
	Strategy *repository.StrategyRepository
}

// TestServices contains all service instances for testing
type TestServices struct {
	Suggestion *service.SuggestionService
	Discover   *service.DiscoverService
}

// getTestConfig returns configuration from environment variables or defaults
func getTestConfig() TestConfig {
	return TestConfig{
		DBDriver:   getEnv("TEST_DB_DRIVER", "postgres"),
		DBHost:     getEnv("TEST_DB_HOST", "localhost"),
		DBPort:     getEnv("TEST_DB_PORT", "5432"),
		DBName:     getEnv("TEST_DB_NAME", "copytrade_test"),
		DBUser:     getEnv("TEST_DB_USER", "postgres"),
		DBPassword: getEnv("TEST_DB_PASSWORD", "postgres"),
		DBSSLMode:  getEnv("TEST_DB_SSLMODE", "disable"),
	}
}

// getEnv returns environment variable value or default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// SetupTestDB creates a test database connection
func SetupTestDB(t *testing.T) (*sql.DB, func()) {
	config := getTestConfig()

	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName, config.DBSSLMode,
	)

	db, err := sql.Open(config.DBDriver, connStr)
	if err != nil {
		t.Skipf("Skipping integration test: cannot connect to database: %v", err)
		return nil, func() {}
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Skipf("Skipping integration test: cannot ping database: %v", err)
		return nil, func() {}
	}

	// Set connection pool settings
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	cleanup := func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}

	return db, cleanup
}

// SetupTestServer creates a complete test server with all components
func SetupTestServer(t *testing.T) *TestServer {
	db, dbCleanup := SetupTestDB(t)
	if db == nil {
		return nil
	}

	// Initialize tables
	if err := initTestTables(db); err != nil {
		t.Skipf("Skipping integration test: cannot initialize tables: %v", err)
		return nil
	}

	// Create WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()

	// Create repositories
	repos := &TestRepositories{
		User:     repository.NewUserRepository(db),
		Strategy: repository.NewStrategyRepository(db),
	}

	// Create services
	logger := zap.NewNop()
	engine := matching.NewEngine(logger)
	services := &TestServices{
		Suggestion: service.NewSuggestionService(repos.User, repos.Strategy, engine, logger),
		Discover:   service.NewDiscoverService(repos.User, repos.Strategy, logger),
	}

	// Setup router
	deps := &api.Dependencies{
		SuggestionService: services.Suggestion,
		DiscoverService:   services.Discover,
		Hub:               hub,
	}
	router := api.SetupRoutes(deps)

	// Create test server
	server := httptest.NewServer(router)

	cleanup := func() {
		server.Close()
		hub.Stop()
		cleanupTestTables(db)
		dbCleanup()
	}

	return &TestServer{
		DB:       db,
		Router:   router,
		Server:   server,
		Hub:      hub,
		Repos:    repos,
		Services: services,
		Cleanup:  cleanup,
	}
}

// initTestTables creates or truncates tables for testing
func initTestTables(db *sql.DB) error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(64) PRIMARY KEY,
			username VARCHAR(100) NOT NULL,
			user_type VARCHAR(20) NOT NULL,
			account_ids TEXT[] DEFAULT '{}',
			follower_ids TEXT[] DEFAULT '{}',
			win_rate DECIMAL(10, 4),
			total_pnl DECIMAL(20, 2),
			monthly_return DECIMAL(10, 4),
			total_trades INT,
			risk_tolerance VARCHAR(20),
			investment_style VARCHAR(20),
			trading_frequency VARCHAR(20),
			preferred_markets TEXT[] DEFAULT '{}',
			max_drawdown DECIMAL(10, 4),
			target_return DECIMAL(10, 4),
			created_at TIMESTAMP DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS strategies (
			id VARCHAR(64) PRIMARY KEY,
			leader_id VARCHAR(64) NOT NULL,
			account_id VARCHAR(64) DEFAULT '',
			name VARCHAR(100) NOT NULL,
			risk_level VARCHAR(20),
			trade_type VARCHAR(30),
			total_return DECIMAL(10, 4),
			win_rate DECIMAL(10, 4),
			average_profit DECIMAL(10, 4),
			copier_ids TEXT[] DEFAULT '{}',
			created_at TIMESTAMP DEFAULT NOW()
		)`,
	}

	for _, table := range tables {
		if _, err := db.Exec(table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

// cleanupTestTables truncates all test tables
func cleanupTestTables(db *sql.DB) {
	tables := []string{
		"strategies",
		"users",
	}

	for _, table := range tables {
		db.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
	}
}

// TruncateTable truncates a specific table for testing
func TruncateTable(db *sql.DB, tableName string) error {
	_, err := db.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", tableName))
	return err
}

// insertTestLeader inserts a leader with performance metrics
func insertTestLeader(db *sql.DB, id, username string, winRate, totalPnl, monthlyReturn float64, totalTrades int) error {
	_, err := db.Exec(`
		INSERT INTO users (id, username, user_type, win_rate, total_pnl, monthly_return, total_trades)
		VALUES ($1, $2, 'leader', $3, $4, $5, $6)
	`, id, username, winRate, totalPnl, monthlyReturn, totalTrades)
	return err
}

// insertTestCopier inserts a copier with matching preferences
func insertTestCopier(db *sql.DB, id, username, riskTolerance, investmentStyle, tradingFrequency string, maxDrawdown, targetReturn float64) error {
	_, err := db.Exec(`
		INSERT INTO users (id, username, user_type, risk_tolerance, investment_style, trading_frequency, preferred_markets, max_drawdown, target_return)
		VALUES ($1, $2, 'copier', $3, $4, $5, '{"USD"}', $6, $7)
	`, id, username, riskTolerance, investmentStyle, tradingFrequency, maxDrawdown, targetReturn)
	return err
}

// insertTestStrategy inserts a complete strategy with performance metrics
func insertTestStrategy(db *sql.DB, id, leaderID, name, riskLevel, tradeType string, totalReturn, winRate, avgProfit float64) error {
	_, err := db.Exec(`
		INSERT INTO strategies (id, leader_id, name, risk_level, trade_type, total_return, win_rate, average_profit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, id, leaderID, name, riskLevel, tradeType, totalReturn, winRate, avgProfit)
	return err
}
