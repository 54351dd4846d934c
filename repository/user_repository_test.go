package repository

import (
	"database/sql"
	"go-publisher-api/model"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestUserRepository_GetUserByUsername(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	query := regexp.QuoteMeta(`SELECT id, username, password, role, created_at FROM users WHERE username = $1`)

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "username", "password", "role", "created_at"}).
			AddRow(3, "apelle", "hashed", "editor", time.Now())
		dbMock.ExpectQuery(query).WithArgs("apelle").WillReturnRows(rows)

		user, err := repo.GetUserByUsername("apelle")

		assert.NoError(t, err)
		assert.Equal(t, 3, user.ID)
		assert.Equal(t, model.RoleEditor, user.Role)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("not found surfaces sql.ErrNoRows", func(t *testing.T) {
		dbMock.ExpectQuery(query).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserByUsername("ghost")

		assert.Nil(t, user)
		assert.Equal(t, sql.ErrNoRows, err)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestLedgerRepository_GetMembership(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewLedgerRepository(db)
	query := regexp.QuoteMeta(`SELECT id, ledger_id, user_id, member_role, created_at FROM ledger_members WHERE ledger_id = $1 AND user_id = $2`)

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "ledger_id", "user_id", "member_role", "created_at"}).
			AddRow(1, 7, 3, "bookkeeper", time.Now())
		dbMock.ExpectQuery(query).WithArgs(7, 3).WillReturnRows(rows)

		member, err := repo.GetMembership(7, 3)

		assert.NoError(t, err)
		assert.Equal(t, 7, member.LedgerID)
		assert.Equal(t, 3, member.UserID)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("absent row surfaces sql.ErrNoRows", func(t *testing.T) {
		dbMock.ExpectQuery(query).WithArgs(7, 42).WillReturnError(sql.ErrNoRows)

		member, err := repo.GetMembership(7, 42)

		assert.Nil(t, member)
		assert.Equal(t, sql.ErrNoRows, err)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}
