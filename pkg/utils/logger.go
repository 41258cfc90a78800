package utils

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logger.go - структурированное логирование (uber-go/zap)
//
// Назначение:
// Единая точка инициализации логгера для всего сервиса.
//
// Возможности:
// - Формат JSON (production) или text (development)
// - Уровни: debug, info, warn, error, fatal
// - Вывод в stderr/stdout или файл (с fallback на stderr)
// - Глобальный логгер для мест, где DI неудобен
// - Доменные конструкторы полей (leader_id, copier_id, score, ...)

// LogConfig - конфигурация логгера
type LogConfig struct {
	Level       string // debug, info, warn, error, fatal
	Format      string // json или text
	Output      string // "", "stderr", "stdout" или путь к файлу
	Development bool   // человекочитаемый вывод для разработки
}

// Logger оборачивает zap.Logger вместе с его sugar-вариантом
type Logger struct {
	*zap.Logger
	sugar *zap.SugaredLogger
}

// InitLogger создает и настраивает логгер.
//
// Никогда не возвращает nil и не паникует: некорректный уровень
// деградирует к info, недоступный файл вывода - к stderr.
func InitLogger(cfg LogConfig) *Logger {
	level := parseLevel(cfg.Level)

	var encCfg zapcore.EncoderConfig
	if cfg.Development {
		encCfg = zap.NewDevelopmentEncoderConfig()
	} else {
		encCfg = zap.NewProductionEncoderConfig()
		encCfg.TimeKey = "timestamp"
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	var encoder zapcore.Encoder
	switch strings.ToLower(cfg.Format) {
	case "text", "console":
		encoder = zapcore.NewConsoleEncoder(encCfg)
	default:
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	sink := zapcore.AddSync(os.Stderr)
	switch cfg.Output {
	case "", "stderr":
		// stderr по умолчанию
	case "stdout":
		sink = zapcore.AddSync(os.Stdout)
	default:
		if f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			sink = zapcore.AddSync(f)
		}
		// Ошибка открытия файла - остаемся на stderr
	}

	opts := []zap.Option{}
	if cfg.Development {
		opts = append(opts, zap.Development())
	}

	l := zap.New(zapcore.NewCore(encoder, sink, level), opts...)
	return &Logger{Logger: l, sugar: l.Sugar()}
}

// parseLevel разбирает строковый уровень логирования.
// Неизвестное значение - info.
func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// With возвращает дочерний логгер с дополнительными полями
func (l *Logger) With(fields ...zap.Field) *Logger {
	child := l.Logger.With(fields...)
	return &Logger{Logger: child, sugar: child.Sugar()}
}

// Sugar возвращает sugar-вариант логгера
func (l *Logger) Sugar() *zap.SugaredLogger {
	return l.sugar
}

// ============ Доменные With-хелперы ============

// WithComponent помечает логгер именем компонента
func (l *Logger) WithComponent(component string) *Logger {
	return l.With(Component(component))
}

// ============ Глобальный логгер ============

var (
	globalMu     sync.Mutex
	globalLogger *Logger
)

// InitGlobalLogger инициализирует глобальный логгер
func InitGlobalLogger(cfg LogConfig) *Logger {
	logger := InitLogger(cfg)
	SetGlobalLogger(logger)
	return logger
}

// SetGlobalLogger устанавливает глобальный логгер
func SetGlobalLogger(logger *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}

// GetGlobalLogger возвращает глобальный логгер, создавая дефолтный
// при первом обращении
func GetGlobalLogger() *Logger {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger == nil {
		globalLogger = InitLogger(LogConfig{})
	}
	return globalLogger
}

// L - короткий алиас GetGlobalLogger
func L() *Logger {
	return GetGlobalLogger()
}

// Глобальные функции логирования

func Debug(msg string, fields ...zap.Field) { L().Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { L().Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { L().Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { L().Error(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { L().Fatal(msg, fields...) }

func Debugf(format string, args ...interface{}) { L().sugar.Debugf(format, args...) }
func Infof(format string, args ...interface{})  { L().sugar.Infof(format, args...) }
func Warnf(format string, args ...interface{})  { L().sugar.Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { L().sugar.Errorf(format, args...) }

// fieldsToInterface преобразует zap-поля в плоский список
// ключ/значение для sugar-вызовов
func fieldsToInterface(fields []zap.Field) []interface{} {
	out := make([]interface{}, 0, len(fields)*2)
	for _, f := range fields {
		enc := zapcore.NewMapObjectEncoder()
		f.AddTo(enc)
		out = append(out, f.Key, enc.Fields[f.Key])
	}
	return out
}

// ============ Доменные конструкторы полей ============

// Leader - идентификатор лидера
func Leader(id string) zap.Field { return zap.String("leader_id", id) }

// Copier - идентификатор копира
func Copier(id string) zap.Field { return zap.String("copier_id", id) }

// Strategy - идентификатор стратегии
func Strategy(id string) zap.Field { return zap.String("strategy_id", id) }

// Score - значение балла совместимости
func Score(v float64) zap.Field { return zap.Float64("score", v) }

// Dimension - измерение скоринга (risk/style/market/frequency)
func Dimension(name string) zap.Field { return zap.String("dimension", name) }

// Candidates - количество кандидатов
func Candidates(n int) zap.Field { return zap.Int("candidates", n) }

// Latency - латентность в миллисекундах
func Latency(ms float64) zap.Field { return zap.Float64("latency_ms", ms) }

// RequestID - идентификатор HTTP запроса
func RequestID(id string) zap.Field { return zap.String("request_id", id) }

// Component - имя компонента
func Component(name string) zap.Field { return zap.String("component", name) }

// Переэкспорт стандартных конструкторов zap, чтобы вызывающему коду
// не требовался прямой импорт zap

func String(key, value string) zap.Field { return zap.String(key, value) }

func Int(key string, value int) zap.Field { return zap.Int(key, value) }

func Int64(key string, value int64) zap.Field { return zap.Int64(key, value) }

func Float64(key string, value float64) zap.Field { return zap.Float64(key, value) }

func Bool(key string, value bool) zap.Field { return zap.Bool(key, value) }

func Err(err error) zap.Field { return zap.Error(err) }

func Any(key string, value interface{}) zap.Field { return zap.Any(key, value) }
