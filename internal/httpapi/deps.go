package httpapi

import (
	"database/sql"
	"sync/atomic"

	"gamecraft-engine/internal/config"
	"gamecraft-engine/internal/events"
	"gamecraft-engine/internal/service"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Atomic stores
	CfgVal     *atomic.Value // stores config.Config
	SyncStatus *atomic.Value // stores httpapi.SyncStatus

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	Auth         *service.AuthService
	Applications *service.ApplicationsService
	Admin        *service.AdminService
	Positions    *service.PositionsService
}

// SyncStatus reports the background session-recheck loop.
type SyncStatus struct {
	LastCheckAt   string `json:"last_check_at"`
	LastOkAt      string `json:"last_ok_at"`
	LastError     string `json:"last_error"`
	Authenticated bool   `json:"authenticated"`
	Running       bool   `json:"running"`
}
