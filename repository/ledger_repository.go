package repository

import (
	"database/sql"
	"go-publisher-api/logger"
	"go-publisher-api/model"

	"github.com/sirupsen/logrus"
)

// ILedgerRepository defines the contract for ledger and membership
// database operations.
type ILedgerRepository interface {
	CreateLedger(ledger *model.Ledger) error
	GetLedgerByID(id int) (*model.Ledger, error)
	GetLedgersByUserID(userID int) ([]*model.Ledger, error)
	GetMembership(ledgerID, userID int) (*model.LedgerMember, error)
	AddMember(member *model.LedgerMember) error
	RemoveMember(ledgerID, userID int) error
}

// LedgerRepository implements ILedgerRepository.
type LedgerRepository struct {
	DB *sql.DB
}

func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{DB: db}
}

// CreateLedger adds a new ledger to the database.
func (r *LedgerRepository) CreateLedger(ledger *model.Ledger) error {
	log := logger.Log.WithField("name", ledger.Name)
	log.Info("Executing query to create a new ledger")

	query := `INSERT INTO ledgers (name) VALUES ($1) RETURNING id, created_at`
	err := r.DB.QueryRow(query, ledger.Name).Scan(&ledger.ID, &ledger.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create ledger query")
		return err
	}
	return nil
}

func (r *LedgerRepository) GetLedgerByID(id int) (*model.Ledger, error) {
	ledger := &model.Ledger{}
	query := `SELECT id, name, created_at FROM ledgers WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&ledger.ID, &ledger.Name, &ledger.CreatedAt)
	if err != nil {
		return nil, err
	}
	return ledger, nil
}

// GetLedgersByUserID retrieves every ledger the user is a member of.
func (r *LedgerRepository) GetLedgersByUserID(userID int) ([]*model.Ledger, error) {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to get ledgers by user ID")

	query := `
		SELECT l.id, l.name, l.created_at
		FROM ledgers l
		JOIN ledger_members m ON m.ledger_id = l.id
		WHERE m.user_id = $1
		ORDER BY l.id`
	rows, err := r.DB.Query(query, userID)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for ledgers by user ID")
		return nil, err
	}
	defer rows.Close()

	// A user with no memberships gets [] rather than null.
	ledgers := []*model.Ledger{}
	for rows.Next() {
		var l model.Ledger
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedAt); err != nil {
			log.WithError(err).Error("Failed to scan ledger row")
			return nil, err
		}
		ledgers = append(ledgers, &l)
	}
	return ledgers, nil
}

// GetMembership retrieves the membership row for (ledger, user).
// sql.ErrNoRows means the user has no membership on the ledger; the
// caller decides what that absence means.
func (r *LedgerRepository) GetMembership(ledgerID, userID int) (*model.LedgerMember, error) {
	member := &model.LedgerMember{}
	query := `SELECT id, ledger_id, user_id, member_role, created_at FROM ledger_members WHERE ledger_id = $1 AND user_id = $2`
	err := r.DB.QueryRow(query, ledgerID, userID).Scan(&member.ID, &member.LedgerID, &member.UserID, &member.MemberRole, &member.CreatedAt)
	if err != nil {
		return nil, err
	}
	return member, nil
}

// AddMember grants a user membership on a ledger.
func (r *LedgerRepository) AddMember(member *model.LedgerMember) error {
	log := logger.Log.WithFields(logrus.Fields{
		"ledger_id": member.LedgerID,
		"user_id":   member.UserID,
	})
	log.Info("Executing query to add a ledger member")

	query := `INSERT INTO ledger_members (ledger_id, user_id, member_role) VALUES ($1, $2, $3) RETURNING id, created_at`
	err := r.DB.QueryRow(query, member.LedgerID, member.UserID, member.MemberRole).Scan(&member.ID, &member.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute add ledger member query")
		return err
	}
	return nil
}

// RemoveMember revokes a user's membership on a ledger.
func (r *LedgerRepository) RemoveMember(ledgerID, userID int) error {
	log := logger.Log.WithFields(logrus.Fields{
		"ledger_id": ledgerID,
		"user_id":   userID,
	})
	log.Info("Executing query to remove a ledger member")

	query := `DELETE FROM ledger_members WHERE ledger_id = $1 AND user_id = $2`
	_, err := r.DB.Exec(query, ledgerID, userID)
	if err != nil {
		log.WithError(err).Error("Failed to execute remove ledger member query")
		return err
	}
	return nil
}
