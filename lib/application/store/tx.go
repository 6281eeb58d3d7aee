package applicationstore

import (
	historystore "attachment-portal-backend/lib/application-history/store"
	filesdbstorage "attachment-portal-backend/lib/file-storage/storage"

	"gorm.io/gorm"
)

// Stores groups the stores written together when an application changes.
type Stores struct {
	Applications Provider
	Files        filesdbstorage.Provider
	History      historystore.Provider
}

// TxFunc runs fn with stores bound to one transaction.
type TxFunc func(fn func(stores Stores) error) error

func NewTx(DB *gorm.DB) TxFunc {
	return func(fn func(stores Stores) error) error {
		return DB.Transaction(func(tx *gorm.DB) error {
			return fn(Stores{
				Applications: NewInstance(tx),
				Files:        filesdbstorage.NewInstance(tx),
				History:      historystore.NewInstance(tx),
			})
		})
	}
}
