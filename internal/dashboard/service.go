package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/medrelive/medfinder-backend/internal/catalog"
	"github.com/medrelive/medfinder-backend/internal/search"
	"github.com/medrelive/medfinder-backend/internal/stores"
	"github.com/medrelive/medfinder-backend/pkg/enums"
	pkgerrors "github.com/medrelive/medfinder-backend/pkg/errors"
	"github.com/medrelive/medfinder-backend/pkg/logger"
)

const (
	// JustNow is the last-updated marker written by an operator edit.
	JustNow = "Just now"

	SyncMessage = "Stock synchronization successful!"
)

type inventoryIndex interface {
	Store(storeID string) (catalog.Store, bool)
	UpdateStatus(storeID, medicineID string, status enums.StockStatus, lastUpdated string) (catalog.InventoryRecord, error)
}

type medicineLookup interface {
	Medicine(id string) (catalog.Medicine, bool)
}

// Waiter blocks for d or until ctx is done. It stands in for the network
// round trip of login and sync.
type Waiter func(ctx context.Context, d time.Duration) error

// Sleep is the production Waiter.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Service is the operator dashboard for the single current store.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*SessionDTO, error)
	Inventory(ctx context.Context, filter string) ([]stores.InventoryRowDTO, error)
	UpdateStatus(ctx context.Context, medicineID string, status enums.StockStatus) (*stores.InventoryRowDTO, error)
	Sync(ctx context.Context) (*SyncDTO, error)
	Stats(ctx context.Context) (*StatsDTO, error)
}

type ServiceParams struct {
	StoreID    string
	Catalog    medicineLookup
	Inventory  inventoryIndex
	LoginDelay time.Duration
	SyncDelay  time.Duration
	Wait       Waiter
	Logger     *logger.Logger
}

type service struct {
	storeID    string
	catalog    medicineLookup
	inventory  inventoryIndex
	loginDelay time.Duration
	syncDelay  time.Duration
	wait       Waiter
	logg       *logger.Logger
}

// NewService builds the dashboard. The configured store must exist.
func NewService(params ServiceParams) (Service, error) {
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog required")
	}
	if params.Inventory == nil {
		return nil, fmt.Errorf("inventory index required")
	}
	if _, ok := params.Inventory.Store(params.StoreID); !ok {
		return nil, fmt.Errorf("dashboard store %q not in catalog", params.StoreID)
	}
	wait := params.Wait
	if wait == nil {
		wait = Sleep
	}
	return &service{
		storeID:    params.StoreID,
		catalog:    params.Catalog,
		inventory:  params.Inventory,
		loginDelay: params.LoginDelay,
		syncDelay:  params.SyncDelay,
		wait:       wait,
		logg:       params.Logger,
	}, nil
}

// Login simulates the operator sign-in. Credentials are not verified.
func (s *service) Login(ctx context.Context, input LoginInput) (*SessionDTO, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || strings.TrimSpace(input.Password) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}
	if err := s.wait(ctx, s.loginDelay); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "login interrupted")
	}

	session := &SessionDTO{
		SessionID: uuid.NewString(),
		StoreID:   s.storeID,
	}
	if s.logg != nil {
		ctx = s.logg.WithStoreID(s.logg.WithSessionID(ctx, session.SessionID), s.storeID)
		s.logg.Info(ctx, "dashboard.login")
	}
	return session, nil
}

// Inventory lists the store's rows whose medicine name contains filter.
func (s *service) Inventory(ctx context.Context, filter string) ([]stores.InventoryRowDTO, error) {
	st, err := s.current()
	if err != nil {
		return nil, err
	}
	filter = strings.TrimSpace(filter)
	rows := make([]stores.InventoryRowDTO, 0, len(st.Inventory))
	for _, rec := range st.Inventory {
		med, ok := s.catalog.Medicine(rec.MedicineID)
		if !ok {
			continue
		}
		if filter != "" && !search.ContainsFold(med.Name, filter) {
			continue
		}
		rows = append(rows, newRow(med, rec))
	}
	return rows, nil
}

// UpdateStatus sets one record's status and marks it as just updated.
func (s *service) UpdateStatus(ctx context.Context, medicineID string, status enums.StockStatus) (*stores.InventoryRowDTO, error) {
	rec, err := s.inventory.UpdateStatus(s.storeID, medicineID, status, JustNow)
	if err != nil {
		return nil, err
	}
	med, ok := s.catalog.Medicine(medicineID)
	if !ok {
		med = catalog.Medicine{ID: medicineID}
	}
	if s.logg != nil {
		ctx = s.logg.WithMedicineID(s.logg.WithStoreID(ctx, s.storeID), medicineID)
		s.logg.Info(s.logg.WithField(ctx, "status", status.String()), "dashboard.status_updated")
	}
	row := newRow(med, rec)
	return &row, nil
}

// Sync simulates pushing the store's stock to a remote system.
func (s *service) Sync(ctx context.Context) (*SyncDTO, error) {
	if err := s.wait(ctx, s.syncDelay); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sync interrupted")
	}
	return &SyncDTO{Message: SyncMessage}, nil
}

func (s *service) Stats(ctx context.Context) (*StatsDTO, error) {
	st, err := s.current()
	if err != nil {
		return nil, err
	}
	stats := &StatsDTO{StoreID: st.ID}
	for _, rec := range st.Inventory {
		stats.Total++
		switch rec.Status {
		case enums.StockStatusInStock:
			stats.InStock++
		case enums.StockStatusLowStock:
			stats.LowStock++
		case enums.StockStatusOutOfStock:
			stats.OutOfStock++
		}
	}
	return stats, nil
}

func (s *service) current() (catalog.Store, error) {
	st, ok := s.inventory.Store(s.storeID)
	if !ok {
		return catalog.Store{}, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}
	return st, nil
}
