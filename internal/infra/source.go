// README: Selects the ledger row source (CSV directory or SQL database) from config.
package infra

import (
	"context"
	"log"

	"rideshare/internal/config"
	"rideshare/internal/modules/ledger"
)

// NewLedgerSource returns the configured source and a cleanup func that is always safe to call.
func NewLedgerSource(ctx context.Context, cfg config.Config) (ledger.Source, func(), error) {
	if cfg.Source.Kind != config.SourceSQL {
		log.Printf("[LEDGER] action=open source=csv dir=%s", cfg.Source.DataDir)
		return ledger.NewCSVSource(cfg.Source.DataDir), func() {}, nil
	}
	db, err := NewDB(ctx, cfg.DB.Driver, cfg.DB.DSN, cfg.DB.MaxOpenConns, cfg.DB.MaxIdleConns)
	if err != nil {
		return nil, func() {}, err
	}
	log.Printf("[LEDGER] action=open source=sql driver=%s", cfg.DB.Driver)
	return ledger.NewStore(db), func() { db.Close() }, nil
}

// LoadLedger reads the full entity graph once from the configured source.
func LoadLedger(ctx context.Context, cfg config.Config) (*ledger.Repository, error) {
	src, closeSrc, err := NewLedgerSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer closeSrc()

	repo, err := ledger.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	log.Printf("[LEDGER] action=loaded drivers=%d passengers=%d trips=%d",
		len(repo.Drivers()), len(repo.Passengers()), repo.TripCount())
	return repo, nil
}
