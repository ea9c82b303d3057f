package sqlitehost

import (
	"github.com/reglet-dev/contract-sdk/domain/ports"
	"github.com/reglet-dev/contract-sdk/infrastructure/hostcrypto"
	"github.com/reglet-dev/contract-sdk/query/engine"
)

// Host provides every host service of a contract, with state, accounts and
// query tables stored in DB.
type Host struct {
	*DB
	*hostcrypto.Crypto
	*engine.Executor
	ports.Logger
}

var _ ports.Services = (*Host)(nil)

// NewHost assembles a Host over db, reporting contract log messages to logger.
func NewHost(db *DB, logger ports.Logger, opts ...engine.Option) (*Host, error) {
	exec, err := engine.New(db, opts...)
	if err != nil {
		return nil, err
	}
	return &Host{
		DB:       db,
		Crypto:   hostcrypto.New(),
		Executor: exec,
		Logger:   logger,
	}, nil
}
