package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
)

// ErrInvalidConfig возвращается при ошибках валидации конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server   Server   `toml:"server"`
	Database Database `toml:"database"`
	Logs     Logs     `toml:"logs"`
	Metrics  Metrics  `toml:"metrics"`
	Service  Service  `toml:"service"`
	Booking  Booking  `toml:"booking"`
	Prayer   Prayer   `toml:"prayer"`
	Reminder Reminder `toml:"reminder"`
	Jobs     Jobs     `toml:"jobs"`
	Notifier Notifier `toml:"notifier"`
	Auth     Auth     `toml:"auth"`
}

// Server настройки HTTP сервера
type Server struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// Database настройки подключения к PostgreSQL
type Database struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN собирает строку подключения для lib/pq
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Logs настройки логирования
type Logs struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Metrics настройки prometheus метрик
type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Service общие настройки сервиса
type Service struct {
	// Единая таймзона сервиса; вся логика выражена в ней
	Timezone string `toml:"timezone"`
}

// Location загружает таймзону сервиса
func (s Service) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, s.Timezone, err)
	}
	return loc, nil
}

// Booking параметры рабочего дня и бронирования
type Booking struct {
	StartHour               int `toml:"start_hour"`
	EndHour                 int `toml:"end_hour"`
	BreakStartHour          int `toml:"break_start_hour"`
	BreakEndHour            int `toml:"break_end_hour"`
	IntervalMinutes         int `toml:"interval_minutes"`
	SessionMinutes          int `toml:"session_minutes"`
	MaxDaysAhead            int `toml:"max_days_ahead"`
	MinBookingBufferMinutes int `toml:"min_booking_buffer_minutes"`
}

// SlotConfig конвертирует настройки в параметры генератора слотов
func (b Booking) SlotConfig() domain.SlotConfig {
	return domain.SlotConfig{
		StartHour:               b.StartHour,
		EndHour:                 b.EndHour,
		BreakStartHour:          b.BreakStartHour,
		BreakEndHour:            b.BreakEndHour,
		IntervalMinutes:         b.IntervalMinutes,
		MinBookingBufferMinutes: b.MinBookingBufferMinutes,
	}
}

// Prayer настройки провайдера расписания намазов
type Prayer struct {
	BaseURL               string  `toml:"base_url"`
	Timeout               int     `toml:"timeout"`
	Latitude              float64 `toml:"latitude"`
	Longitude             float64 `toml:"longitude"`
	Method                int     `toml:"method"`
	BlockHalfWidthMinutes int     `toml:"block_half_width_minutes"`
	PrefetchDays          int     `toml:"prefetch_days"`
}

// Reminder настройки напоминаний
type Reminder struct {
	LeadMinutes int `toml:"lead_minutes"`
}

// Jobs настройки фоновых задач
type Jobs struct {
	ActivationIntervalMinutes int `toml:"activation_interval_minutes"`
}

// Notifier настройки вебхука доставки напоминаний
type Notifier struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Auth настройки авторизации администраторов
type Auth struct {
	AdminIDs []int64 `toml:"admin_ids"`
}

// Load читает и валидирует конфигурацию из toml файла
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// defaults возвращает конфигурацию со значениями по умолчанию
func defaults() *Config {
	return &Config{
		Server: Server{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: Database{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "bekam_booking",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: Logs{
			File:  "logs/booking-service.log",
			Level: "info",
		},
		Metrics: Metrics{
			Enabled:     false,
			Path:        "/metrics",
			ServiceName: "bkm-booking-service",
		},
		Service: Service{
			Timezone: "Asia/Jakarta",
		},
		Booking: Booking{
			StartHour:               domain.DefaultStartHour,
			EndHour:                 domain.DefaultEndHour,
			BreakStartHour:          domain.DefaultBreakStartHour,
			BreakEndHour:            domain.DefaultBreakEndHour,
			IntervalMinutes:         domain.DefaultIntervalMinutes,
			SessionMinutes:          domain.DefaultSessionMinutes,
			MaxDaysAhead:            domain.DefaultMaxDaysAhead,
			MinBookingBufferMinutes: domain.DefaultMinBookingBufferMinutes,
		},
		Prayer: Prayer{
			BaseURL:               "https://api.aladhan.com",
			Timeout:               10,
			Latitude:              -6.2088,
			Longitude:             106.8456,
			Method:                20,
			BlockHalfWidthMinutes: domain.DefaultPrayerHalfWidthMinutes,
			PrefetchDays:          domain.DefaultPrefetchDays,
		},
		Reminder: Reminder{
			LeadMinutes: domain.DefaultReminderLeadMinutes,
		},
		Jobs: Jobs{
			ActivationIntervalMinutes: 5,
		},
		Notifier: Notifier{
			Enabled: false,
			Timeout: 10,
		},
	}
}

// Validate проверяет согласованность значений конфигурации
func (c *Config) Validate() error {
	var errs []string

	if c.Booking.StartHour < 0 || c.Booking.StartHour > 23 {
		errs = append(errs, "booking.start_hour must be between 0 and 23")
	}
	if c.Booking.EndHour < 0 || c.Booking.EndHour > 23 {
		errs = append(errs, "booking.end_hour must be between 0 and 23")
	}
	if c.Booking.StartHour >= c.Booking.EndHour {
		errs = append(errs, "booking.start_hour must be less than booking.end_hour")
	}
	if c.Booking.BreakStartHour > c.Booking.BreakEndHour {
		errs = append(errs, "booking.break_start_hour must not exceed booking.break_end_hour")
	}
	if c.Booking.IntervalMinutes < 1 {
		errs = append(errs, "booking.interval_minutes must be at least 1")
	}
	if c.Booking.SessionMinutes < domain.MinSessionMinutes || c.Booking.SessionMinutes > domain.MaxSessionMinutes {
		errs = append(errs, fmt.Sprintf("booking.session_minutes must be between %d and %d",
			domain.MinSessionMinutes, domain.MaxSessionMinutes))
	}
	if c.Booking.MaxDaysAhead < 1 {
		errs = append(errs, "booking.max_days_ahead must be at least 1")
	}
	if c.Booking.MinBookingBufferMinutes < 0 {
		errs = append(errs, "booking.min_booking_buffer_minutes must not be negative")
	}
	if c.Prayer.BlockHalfWidthMinutes < 0 {
		errs = append(errs, "prayer.block_half_width_minutes must not be negative")
	}
	if c.Prayer.PrefetchDays < 1 {
		errs = append(errs, "prayer.prefetch_days must be at least 1")
	}
	if c.Reminder.LeadMinutes < 0 {
		errs = append(errs, "reminder.lead_minutes must not be negative")
	}
	if c.Jobs.ActivationIntervalMinutes < 1 {
		errs = append(errs, "jobs.activation_interval_minutes must be at least 1")
	}
	if c.Notifier.Enabled && c.Notifier.URL == "" {
		errs = append(errs, "notifier.url is required when notifier is enabled")
	}
	if _, err := c.Service.Location(); err != nil {
		errs = append(errs, fmt.Sprintf("service.timezone is invalid: %v", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, errs)
	}
	return nil
}
