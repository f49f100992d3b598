package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FrizzlenShop_Go/internal/database/postgres"
	"github.com/osse101/FrizzlenShop_Go/internal/repository"
)

// Repositories holds the repository implementations used by the application.
type Repositories struct {
	Listing repository.Listing
}

// InitializeRepositories creates the postgres-backed repositories.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Listing: postgres.NewListingRepository(dbPool),
	}
}
