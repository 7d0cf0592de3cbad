package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"freshnest-bot/internal/config"
	"freshnest-bot/pkg/redis"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type PostgresStorage struct {
	db     *sqlx.DB
	redis  *redis.Client
	logger *zap.Logger
}

// Valid booking statuses, shared with the admin commands and the webhook.
const (
	StatusNew        = "new"
	StatusProcessing = "processing"
	StatusConfirmed  = "confirmed"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusNew, StatusProcessing, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Booking is the persisted lead. Price columns are a snapshot taken at
// booking time so later catalog changes never rewrite history.
type Booking struct {
	ID        int64  `db:"id"`
	Reference string `db:"reference"`
	ChatID    int64  `db:"chat_id"`

	ServiceID   string `db:"service_id"`
	ServiceType string `db:"service_type"` // residential|commercial|move-in-out|recurring
	Details     string `db:"details"`      // JSON pricing.Selection
	Frequency   string `db:"frequency"`

	Subtotal     float64 `db:"subtotal"`
	Discount     float64 `db:"discount"`
	Tip          float64 `db:"tip"`
	Total        float64 `db:"total"`
	InitialFee   float64 `db:"initial_fee"`
	RecurringFee float64 `db:"recurring_fee"`

	Name          string `db:"name"`
	Email         string `db:"email"`
	Phone         string `db:"phone"`
	Address       string `db:"address"`
	PostalCode    string `db:"postal_code"`
	BookingDate   string `db:"booking_date"` // ISO-8601 date
	ArrivalWindow string `db:"arrival_window"`
	Message       string `db:"message"`

	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

// Application is a persisted join-team submission.
type Application struct {
	ID                   int64     `db:"id"`
	ChatID               int64     `db:"chat_id"`
	FirstName            string    `db:"first_name"`
	LastName             string    `db:"last_name"`
	Email                string    `db:"email"`
	Phone                string    `db:"phone"`
	CleaningExperience   string    `db:"cleaning_experience"`
	HasLicenseAndVehicle string    `db:"has_license_and_vehicle"`
	Availability         string    `db:"availability"`
	Message              string    `db:"message"`
	AdditionalInfo       string    `db:"additional_info"`
	Resume               string    `db:"resume"`
	CreatedAt            time.Time `db:"created_at"`
}

func NewPostgresStorage(ctx context.Context, cfg config.Database, redisClient *redis.Client, logger *zap.Logger) (*PostgresStorage, error) {
	const operation = "storage.NewPostgresStorage"

	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
	)

	var db *sqlx.DB
	var err error

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = 2 * time.Minute
	retryPolicy.MaxInterval = 15 * time.Second

	logger.Info("Connecting to PostgreSQL...")

	err = backoff.RetryNotify(
		func() error {
			db, err = sqlx.ConnectContext(ctx, "postgres", connStr)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}

			if err = db.PingContext(ctx); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
			return nil
		},
		retryPolicy,
		func(err error, duration time.Duration) {
			logger.Warn("PostgreSQL connection failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", duration))
		},
	)

	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect after retries: %w", operation, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	logger.Info("Successfully connected to PostgreSQL")
	return &PostgresStorage{
		db:     db,
		redis:  redisClient,
		logger: logger,
	}, nil
}

func (s *PostgresStorage) SaveBooking(ctx context.Context, booking Booking) (int64, error) {
	const query = `
        INSERT INTO bookings (
            reference, chat_id, service_id, service_type, details, frequency,
            subtotal, discount, tip, total, initial_fee, recurring_fee,
            name, email, phone, address, postal_code,
            booking_date, arrival_window, message, status, created_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
            $13, $14, $15, $16, $17, $18, $19, $20, $21, $22
        )
        RETURNING id
    `

	var bookingID int64
	err := s.db.QueryRowContext(ctx, query,
		booking.Reference,
		booking.ChatID,
		booking.ServiceID,
		booking.ServiceType,
		booking.Details,
		booking.Frequency,
		booking.Subtotal,
		booking.Discount,
		booking.Tip,
		booking.Total,
		booking.InitialFee,
		booking.RecurringFee,
		booking.Name,
		booking.Email,
		booking.Phone,
		booking.Address,
		booking.PostalCode,
		booking.BookingDate,
		booking.ArrivalWindow,
		booking.Message,
		booking.Status,
		booking.CreatedAt,
	).Scan(&bookingID)

	if err != nil {
		return 0, fmt.Errorf("failed to save booking: %w", err)
	}

	// Stats are stale now.
	s.redis.Del(ctx, "booking_stats")

	return bookingID, nil
}

func (s *PostgresStorage) GetBookingByID(ctx context.Context, bookingID int64) (*Booking, error) {
	const query = `SELECT * FROM bookings WHERE id = $1`
	var booking Booking
	err := s.db.GetContext(ctx, &booking, query, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking %d not found", bookingID)
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (s *PostgresStorage) GetBookingByReference(ctx context.Context, reference string) (*Booking, error) {
	const query = `SELECT * FROM bookings WHERE reference = $1`
	var booking Booking
	err := s.db.GetContext(ctx, &booking, query, reference)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking %s not found", reference)
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (s *PostgresStorage) ListBookings(ctx context.Context) ([]Booking, error) {
	const query = `SELECT * FROM bookings ORDER BY created_at DESC`
	var bookings []Booking
	if err := s.db.SelectContext(ctx, &bookings, query); err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	return bookings, nil
}

func (s *PostgresStorage) UpdateBookingStatus(ctx context.Context, bookingID int64, status string) error {
	if !ValidStatus(status) {
		return fmt.Errorf("invalid status: %s", status)
	}

	const query = `UPDATE bookings SET status = $1 WHERE id = $2`
	res, err := s.db.ExecContext(ctx, query, status, bookingID)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("booking %d not found", bookingID)
	}

	s.redis.Del(ctx, "booking_stats")
	return nil
}

func (s *PostgresStorage) SaveApplication(ctx context.Context, app Application) (int64, error) {
	const query = `
        INSERT INTO applications (
            chat_id, first_name, last_name, email, phone,
            cleaning_experience, has_license_and_vehicle, availability,
            message, additional_info, resume, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id
    `

	var appID int64
	err := s.db.QueryRowContext(ctx, query,
		app.ChatID,
		app.FirstName,
		app.LastName,
		app.Email,
		app.Phone,
		app.CleaningExperience,
		app.HasLicenseAndVehicle,
		app.Availability,
		app.Message,
		app.AdditionalInfo,
		app.Resume,
		app.CreatedAt,
	).Scan(&appID)

	if err != nil {
		return 0, fmt.Errorf("failed to save application: %w", err)
	}
	return appID, nil
}

type BookingStatistics struct {
	TotalBookings int            `db:"total_bookings"`
	TotalRevenue  float64        `db:"total_revenue"`
	TodayBookings int            `db:"-"`
	TodayRevenue  float64        `db:"-"`
	WeekBookings  int            `db:"-"`
	WeekRevenue   float64        `db:"-"`
	MonthBookings int            `db:"-"`
	MonthRevenue  float64        `db:"-"`
	StatusCounts  map[string]int `db:"-"`
}

func (s *PostgresStorage) GetBookingStatistics(ctx context.Context) (*BookingStatistics, error) {
	cacheKey := "booking_stats"

	var cached BookingStatistics
	if err := s.redis.GetJSON(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	stats := &BookingStatistics{
		StatusCounts: make(map[string]int),
	}

	type countRevenue struct {
		Count   int     `db:"count"`
		Revenue float64 `db:"revenue"`
	}

	err := s.db.GetContext(ctx, stats, `
        SELECT
            COUNT(*) as total_bookings,
            COALESCE(SUM(total), 0) as total_revenue
        FROM bookings
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking totals: %w", err)
	}

	windows := []struct {
		interval string
		count    *int
		revenue  *float64
	}{
		{"CURRENT_DATE", &stats.TodayBookings, &stats.TodayRevenue},
		{"CURRENT_DATE - INTERVAL '7 days'", &stats.WeekBookings, &stats.WeekRevenue},
		{"CURRENT_DATE - INTERVAL '30 days'", &stats.MonthBookings, &stats.MonthRevenue},
	}
	for _, w := range windows {
		var cr countRevenue
		query := fmt.Sprintf(`
            SELECT COUNT(*) as count, COALESCE(SUM(total), 0) as revenue
            FROM bookings
            WHERE created_at >= %s
        `, w.interval)
		if err := s.db.GetContext(ctx, &cr, query); err != nil {
			return nil, fmt.Errorf("failed to get windowed stats: %w", err)
		}
		*w.count = cr.Count
		*w.revenue = cr.Revenue
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT status, COUNT(*) as count
        FROM bookings
        GROUP BY status
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to get status counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		stats.StatusCounts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read status counts: %w", err)
	}

	if err := s.redis.SetJSON(ctx, cacheKey, stats); err != nil {
		s.logger.Warn("Failed to cache booking statistics", zap.Error(err))
	}

	return stats, nil
}

// CheckRateLimit returns true when the user exceeded limit actions within
// the window. Keeps one chat from spamming submissions.
func (s *PostgresStorage) CheckRateLimit(ctx context.Context, userID int64, action string, limit int64, window time.Duration) (bool, error) {
	key := fmt.Sprintf("ratelimit:%d:%s", userID, action)

	count, err := s.redis.Incr(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	if count == 1 {
		if _, err := s.redis.Expire(ctx, key, window); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return rateLimitExceeded(count, limit), nil
}

// rateLimitExceeded is the threshold rule: the counter already includes
// the current attempt, so attempts 1..limit pass and limit+1 onward block.
func rateLimitExceeded(count, limit int64) bool {
	return count > limit
}

// DB exposes the raw handle for migrations.
func (s *PostgresStorage) DB() *sql.DB {
	return s.db.DB
}

func (s *PostgresStorage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
