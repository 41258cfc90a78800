package crypto

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// hash.go - bcrypt-хеширование API ключей
//
// Служебные endpoints (/metrics) защищены статическим ключом, который
// хранится в конфигурации только в виде bcrypt-хеша. HashKey нужен при
// выпуске ключа (генерация значения METRICS_API_KEY_HASH),
// CheckKeyMatch - при проверке заголовка Authorization.

// Ошибки хеширования
var (
	ErrEmptyKey   = errors.New("key cannot be empty")
	ErrKeyTooLong = errors.New("key exceeds maximum length of 72 bytes")
)

// DefaultCost - стоимость хеширования по умолчанию (рекомендуемое значение)
// Более высокое значение = больше времени на хеширование = более безопасно
const DefaultCost = 12

// MaxKeyLength - максимальная длина ключа для bcrypt (72 байта)
const MaxKeyLength = 72

// HashKey хеширует API ключ с использованием bcrypt
// Автоматически генерирует криптографически стойкий salt
func HashKey(key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	// bcrypt ограничен 72 байтами
	if len(key) > MaxKeyLength {
		return "", ErrKeyTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(key), DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckKeyMatch проверяет соответствие ключа хешу
// Пустой ключ и невалидный хеш считаются несовпадением.
// Использует constant-time comparison для защиты от timing attacks
func CheckKeyMatch(key, hash string) bool {
	if key == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}
