package providers

import (
	"github.com/samber/do/v2"

	"github.com/weeklybite/weeklybite/internal/config"
	"github.com/weeklybite/weeklybite/internal/logger"
	"github.com/weeklybite/weeklybite/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.ShutdownerWithError.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the key-value store. The database itself opens on
// first use.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	s := store.New(store.Options{
		Path:     cfg.Storage.DataPath,
		InMemory: cfg.Storage.Ephemeral,
		Logger:   log.Logger,
	})

	return &StoreHandle{Store: s}, nil
}
