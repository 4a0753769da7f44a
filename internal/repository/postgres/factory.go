package postgres

import (
	repo "github.com/baharkarakas/wallet-service/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	Transactions repo.Transactions
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Transactions: NewTransactions(pool),
	}
}
