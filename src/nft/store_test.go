package nft

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

type StoreTestSuite struct {
	suite.Suite
	ctx context.Context

	mock  sqlmock.Sqlmock
	store *Store
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()

	conn, mock, err := sqlmock.New()
	assert.Nil(s.T(), err)
	s.mock = mock

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.Nil(s.T(), err)

	s.store = NewStore(db)
}

func (s *StoreTestSuite) TearDownTest() {
	assert.Nil(s.T(), s.mock.ExpectationsWereMet())
}

func (s *StoreTestSuite) TestListFiltersByStatusNewestFirst() {
	rows := sqlmock.NewRows([]string{"id", "user_id", "wallet_address", "status"}).
		AddRow(9, "user-1", "rNewer", "pending").
		AddRow(4, "user-2", "rOlder", "pending")

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "nft_requests" WHERE status = $1 ORDER BY id DESC`)).
		WithArgs("pending").
		WillReturnRows(rows)

	requests, err := s.store.List(s.ctx, "pending")
	assert.Nil(s.T(), err)
	assert.Len(s.T(), requests, 2)
	assert.Equal(s.T(), 9, requests[0].ID)
	assert.Equal(s.T(), 4, requests[1].ID)
}

func (s *StoreTestSuite) TestListWithoutFilter() {
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "nft_requests" ORDER BY id DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	requests, err := s.store.List(s.ctx, "")
	assert.Nil(s.T(), err)

	// No matches is an empty array, not null
	assert.NotNil(s.T(), requests)
	assert.Len(s.T(), requests, 0)
}

func (s *StoreTestSuite) TestGetByIdNotFound() {
	s.mock.ExpectQuery(`SELECT (.+) FROM "nft_requests" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.store.GetById(s.ctx, 42)
	assert.Equal(s.T(), ErrNotFound, err)
}

func (s *StoreTestSuite) TestUpdateStatusNotFound() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec(`UPDATE "nft_requests" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	_, err := s.store.UpdateStatus(s.ctx, 42, "approved")
	assert.Equal(s.T(), ErrNotFound, err)
}
