package nft

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/forestledger/backend/src/utils/logger"
	"github.com/forestledger/backend/src/utils/model"

	"github.com/jackc/pgtype"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("nft request not found")

// Persistence of preservation certificate requests
type Store struct {
	db  *gorm.DB
	log *logrus.Entry
}

func NewStore(db *gorm.DB) (self *Store) {
	self = new(Store)
	self.db = db
	self.log = logger.NewSublogger("nft-store")
	return
}

func (self *Store) Create(ctx context.Context, userId, walletAddress string, metadata *Metadata) (out *model.NFTRequest, err error) {
	buf, err := json.Marshal(metadata)
	if err != nil {
		return
	}

	out = &model.NFTRequest{
		UserId:        userId,
		WalletAddress: walletAddress,
		Metadata:      pgtype.JSONB{Bytes: buf, Status: pgtype.Present},
		Status:        model.StatusPending,
	}

	err = self.db.WithContext(ctx).Create(out).Error
	if err != nil {
		out = nil
	}
	return
}

// Newest requests first, optionally filtered by exact status
func (self *Store) List(ctx context.Context, status string) (out []*model.NFTRequest, err error) {
	out = make([]*model.NFTRequest, 0)

	query := self.db.WithContext(ctx).Order("id DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	err = query.Find(&out).Error
	return
}

func (self *Store) GetById(ctx context.Context, id int) (out *model.NFTRequest, err error) {
	out = new(model.NFTRequest)
	err = self.db.WithContext(ctx).First(out, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return
}

func (self *Store) ListByUser(ctx context.Context, userId string) (out []*model.NFTRequest, err error) {
	out = make([]*model.NFTRequest, 0)
	err = self.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("id DESC").
		Find(&out).
		Error
	return
}

func (self *Store) ListByWallet(ctx context.Context, walletAddress string) (out []*model.NFTRequest, err error) {
	out = make([]*model.NFTRequest, 0)
	err = self.db.WithContext(ctx).
		Where("wallet_address = ?", walletAddress).
		Order("id DESC").
		Find(&out).
		Error
	return
}

func (self *Store) UpdateStatus(ctx context.Context, id int, status string) (out *model.NFTRequest, err error) {
	result := self.db.WithContext(ctx).
		Model(&model.NFTRequest{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return self.GetById(ctx, id)
}
