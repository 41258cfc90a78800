package websocket

import (
	"time"

	"copytrade/internal/models"
)

// MessageType определяет тип WebSocket сообщения
type MessageType string

// Типы WebSocket сообщений
const (
	// MessageTypeLeaderboardUpdate - обновление рейтинга лидеров
	// Отправляется периодически (broadcast interval из конфигурации)
	MessageTypeLeaderboardUpdate MessageType = "leaderboardUpdate"

	// MessageTypeStrategyBoardUpdate - обновление рейтинга стратегий
	MessageTypeStrategyBoardUpdate MessageType = "strategyBoardUpdate"
)

// BaseMessage - базовая структура для всех WebSocket сообщений
type BaseMessage struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
}

// LeaderboardUpdateMessage - сообщение с актуальным рейтингом лидеров.
//
// Позволяет frontend держать витрину лидеров свежей без polling.
type LeaderboardUpdateMessage struct {
	BaseMessage
	Leaders []*models.LeaderRank `json:"leaders"`
}

// StrategyBoardUpdateMessage - сообщение с актуальным рейтингом стратегий
type StrategyBoardUpdateMessage struct {
	BaseMessage
	Strategies []*models.StrategyRank `json:"strategies"`
}

// NewLeaderboardUpdateMessage создает сообщение обновления рейтинга лидеров
func NewLeaderboardUpdateMessage(leaders []*models.LeaderRank) *LeaderboardUpdateMessage {
	if leaders == nil {
		leaders = []*models.LeaderRank{}
	}
	return &LeaderboardUpdateMessage{
		BaseMessage: BaseMessage{
			Type:      MessageTypeLeaderboardUpdate,
			Timestamp: time.Now(),
		},
		Leaders: leaders,
	}
}

// NewStrategyBoardUpdateMessage создает сообщение обновления рейтинга стратегий
func NewStrategyBoardUpdateMessage(strategies []*models.StrategyRank) *StrategyBoardUpdateMessage {
	if strategies == nil {
		strategies = []*models.StrategyRank{}
	}
	return &StrategyBoardUpdateMessage{
		BaseMessage: BaseMessage{
			Type:      MessageTypeStrategyBoardUpdate,
			Timestamp: time.Now(),
		},
		Strategies: strategies,
	}
}
