package simpletxmanager

import (
	"context"
	"database/sql"

	"github.com/m04kA/SMC-BarbershopService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarbershopService/pkg/txmanager"
)

// TransactionManager менеджер транзакций поверх *sql.DB без обёртки метрик
// Используется, когда сбор метрик выключен в конфигурации.
// Политика повторов при конфликте сериализации общая с pkg/txmanager:
// поведение конкурирующих бронирований не зависит от включенности метрик
type TransactionManager struct {
	inner *txmanager.TransactionManager
}

// NewTransactionManager создает новый менеджер транзакций
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{
		inner: txmanager.NewTransactionManager(plainBeginner{db: db}),
	}
}

// DoSerializable выполняет fn внутри SERIALIZABLE транзакции
// с повторами при конфликте сериализации (SQLSTATE 40001)
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.inner.DoSerializable(ctx, fn)
}

// plainBeginner адаптирует *sql.DB к txmanager.TxBeginner
type plainBeginner struct {
	db *sql.DB
}

func (b plainBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx, err := b.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return tx, nil
}
