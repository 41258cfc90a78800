package utils

import (
	"fmt"
	"strings"
)

// validator.go - валидация входных данных API
//
// Назначение:
// Проверка корректности данных на границе HTTP слоя, до обращения
// к сервисам и хранилищу.
//
// Функции:
// - ValidateID: идентификатор пользователя/стратегии
// - ValidateLimit: ограничение размера выдачи
//
// Возвращают error с описанием проблемы или nil

// Ограничения идентификаторов
const (
	maxIDLength = 64
)

// ValidateID проверяет идентификатор пользователя или стратегии.
//
// Допустимы латинские буквы, цифры, дефис и подчеркивание,
// длина от 1 до 64 символов.
func ValidateID(id string) error {
	if id == "" {
		return fmt.Errorf("id must not be empty")
	}
	if len(id) > maxIDLength {
		return fmt.Errorf("id must not exceed %d characters, got %d", maxIDLength, len(id))
	}
	for _, r := range id {
		if !isIDChar(r) {
			return fmt.Errorf("id contains invalid character %q", r)
		}
	}
	return nil
}

func isIDChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_':
		return true
	default:
		return false
	}
}

// ValidateLimit проверяет запрошенный размер выдачи.
//
// Допустимы значения от 1 до max включительно.
func ValidateLimit(limit, max int) error {
	if limit < 1 {
		return fmt.Errorf("limit must be positive, got %d", limit)
	}
	if limit > max {
		return fmt.Errorf("limit must not exceed %d, got %d", max, limit)
	}
	return nil
}

// NormalizeID приводит идентификатор к каноническому виду
// (обрезка пробелов по краям)
func NormalizeID(id string) string {
	return strings.TrimSpace(id)
}
