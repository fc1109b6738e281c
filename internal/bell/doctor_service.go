package bell

import (
	"context"

	"github.com/colonyops/dashbell/internal/core/config"
	"github.com/colonyops/dashbell/internal/core/doctor"
	"github.com/colonyops/dashbell/internal/core/notify"
)

// DoctorService runs health checks on the dashbell setup.
type DoctorService struct {
	config  *config.Config
	backend *Backend
	readIDs *notify.KVReadIDStore
	center  *notify.Center
	source  string
}

// NewDoctorService creates a new DoctorService.
func NewDoctorService(cfg *config.Config, backend *Backend, readIDs *notify.KVReadIDStore, center *notify.Center, source string) *DoctorService {
	return &DoctorService{
		config:  cfg,
		backend: backend,
		readIDs: readIDs,
		center:  center,
		source:  source,
	}
}

// RunChecks executes all doctor checks and returns results.
func (d *DoctorService) RunChecks(ctx context.Context, configPath string, autofix bool) []doctor.Result {
	checks := []doctor.Check{
		doctor.NewConfigCheck(d.config, configPath),
		doctor.NewStorageCheck(d.backend.Store, d.backend.Name, d.readIDs.Key(), autofix),
		doctor.NewCatalogCheck(d.center.Catalog(), d.center.ReadIDs(), d.source),
	}
	return doctor.RunAll(ctx, checks)
}
