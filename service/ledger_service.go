package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"go-publisher-api/logger"
	"go-publisher-api/model"
	"go-publisher-api/repository"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrUserNotFound      = errors.New("user account not found")
	ErrAccessDenied      = errors.New("no access to this ledger")
	ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")
	ErrLedgerNotFound    = errors.New("ledger not found")
	ErrInvalidAmount     = errors.New("amount must be a decimal number")
	ErrAlreadyMember     = errors.New("user is already a member of this ledger")
)

// dateLayout is the ISO calendar date format accepted for record dates
// and query bounds.
const dateLayout = "2006-01-02"

type LedgerService struct {
	db         *sql.DB
	userRepo   repository.IUserRepository
	ledgerRepo repository.ILedgerRepository
	recordRepo repository.IRecordRepository
}

func NewLedgerService(db *sql.DB, userRepo repository.IUserRepository, ledgerRepo repository.ILedgerRepository, recordRepo repository.IRecordRepository) *LedgerService {
	return &LedgerService{
		db:         db,
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
		recordRepo: recordRepo,
	}
}

// GetRecords returns the records of a ledger that the named user is
// allowed to see, optionally bounded by an inclusive date range.
//
// The checks run in a fixed order and each failure is terminal:
// an unknown username fails with ErrUserNotFound before the membership
// registry is ever consulted; a known user without a membership row on
// the ledger fails with ErrAccessDenied regardless of their global role;
// a malformed date bound fails with ErrInvalidDateFormat rather than
// silently dropping the filter. Empty date strings mean "no bound on
// that side".
func (s *LedgerService) GetRecords(ctx context.Context, ledgerID int, startDate, endDate, username string) ([]*model.LedgerRecord, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"ledger_id": ledgerID,
		"username":  username,
	})
	log.Info("Ledger record query started")

	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// Membership is the sole authorization signal here. The user's global
	// role is a separate axis checked by the admin routes, never by this
	// path.
	if _, err := s.ledgerRepo.GetMembership(ledgerID, user.ID); err != nil {
		if err == sql.ErrNoRows {
			log.WithField("user_id", user.ID).Warn("Ledger access denied: no membership")
			return nil, ErrAccessDenied
		}
		return nil, err
	}

	start, err := parseDateBound(startDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDateBound(endDate)
	if err != nil {
		return nil, err
	}

	return s.recordRepo.GetRecordsByLedgerID(ledgerID, start, end)
}

// parseDateBound parses an optional ISO calendar date. An empty string is
// an absent bound, not an error.
func parseDateBound(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	return &t, nil
}

// CreateLedger creates a new, empty ledger.
func (s *LedgerService) CreateLedger(name string) (*model.Ledger, error) {
	ledger := &model.Ledger{Name: name}
	if err := s.ledgerRepo.CreateLedger(ledger); err != nil {
		return nil, err
	}
	return ledger, nil
}

// ListLedgersForUser lists the ledgers the user holds a membership on.
func (s *LedgerService) ListLedgersForUser(userID int) ([]*model.Ledger, error) {
	return s.ledgerRepo.GetLedgersByUserID(userID)
}

// AddMember grants a user membership on a ledger after checking that both
// sides of the relation exist.
func (s *LedgerService) AddMember(ledgerID, userID int, memberRole string) (*model.LedgerMember, error) {
	if _, err := s.ledgerRepo.GetLedgerByID(ledgerID); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrLedgerNotFound
		}
		return nil, err
	}
	if _, err := s.userRepo.GetUserByID(userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// Granting the same membership twice would otherwise bubble up as a
	// unique-violation from the database.
	if _, err := s.ledgerRepo.GetMembership(ledgerID, userID); err == nil {
		return nil, ErrAlreadyMember
	} else if err != sql.ErrNoRows {
		return nil, err
	}

	member := &model.LedgerMember{
		LedgerID:   ledgerID,
		UserID:     userID,
		MemberRole: memberRole,
	}
	if err := s.ledgerRepo.AddMember(member); err != nil {
		return nil, err
	}
	return member, nil
}

// RemoveMember revokes a user's membership on a ledger.
func (s *LedgerService) RemoveMember(ledgerID, userID int) error {
	return s.ledgerRepo.RemoveMember(ledgerID, userID)
}

// CreateRecord appends a record (and its detail rows) to a ledger. The
// caller must hold a membership on the ledger; the record and details are
// written in a single database transaction.
func (s *LedgerService) CreateRecord(ctx context.Context, ledgerID int, username string, req model.CreateRecordRequest) (*model.LedgerRecord, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"ledger_id": ledgerID,
		"username":  username,
		"category":  req.Category,
	})
	log.Info("Starting ledger record creation")

	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if _, err := s.ledgerRepo.GetMembership(ledgerID, user.ID); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAccessDenied
		}
		return nil, err
	}

	recordDate, err := time.Parse(dateLayout, req.RecordDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, ErrInvalidAmount
	}

	record := &model.LedgerRecord{
		LedgerID:    ledgerID,
		RecordDate:  recordDate,
		Category:    req.Category,
		Description: req.Description,
		Amount:      amount,
		Details:     make([]model.RecordDetail, 0, len(req.Details)),
	}
	for _, d := range req.Details {
		record.Details = append(record.Details, model.RecordDetail{Item: d.Item, Value: d.Value})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.recordRepo.CreateRecord(tx, record); err != nil {
		return nil, fmt.Errorf("could not create ledger record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}

	log.WithField("record_id", record.ID).Info("Ledger record created successfully")
	return record, nil
}
