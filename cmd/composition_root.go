package cmd

import (
	"log/slog"

	inhttp "fleetops/internal/adapters/in/http"
	"fleetops/internal/adapters/out/eventlog"
	"fleetops/internal/adapters/out/filestore"
	"fleetops/internal/adapters/out/flow"
	"fleetops/internal/adapters/out/postgres"
	"fleetops/internal/adapters/out/vendor"
	"fleetops/internal/core/application/usecases/commands"
	"fleetops/internal/core/application/usecases/queries"
	"fleetops/internal/core/ports"
	"fleetops/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. Everything hangs off
// one GORM connection and one shared logger.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	flowProvider  ports.FlowProvider
	publisher     ports.EventPublisher
	vendorGateway ports.VendorGateway
	fileStore     ports.FileStore
}

// NewCompositionRoot assembles the shared adapters from configuration.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	fileStore, err := filestore.NewLocalStore(cfg.FileStoreDir)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:        logger,
		flowProvider:  flow.NewProvider(),
		publisher:     eventlog.NewPublisher(logger),
		vendorGateway: vendor.NewClient(cfg.VendorEndpoint, cfg.VendorAPIKey, logger),
		fileStore:     fileStore,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.vendorGateway, c.publisher)
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateStartOrderCommandHandler() commands.StartOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartOrderCommandHandler(f, c.flowProvider, c.publisher)
}

func (c *CompositionRoot) CreateUpdateActivityCommandHandler() commands.UpdateActivityCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateActivityCommandHandler(f, c.flowProvider, c.publisher)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateSetDestinationCommandHandler() commands.SetDestinationCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetDestinationCommandHandler(f)
}

func (c *CompositionRoot) CreateScheduleOrderCommandHandler() commands.ScheduleOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewScheduleOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateDispatchDueOrdersCommandHandler() commands.DispatchDueOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchDueOrdersCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCaptureQrScanCommandHandler() commands.CaptureQrScanCommandHandler {
	var f commands.ProofUoWFactory = FuncProofUoWFactory(func() commands.ProofUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCaptureQrScanCommandHandler(f)
}

func (c *CompositionRoot) CreateCaptureSignatureCommandHandler() commands.CaptureSignatureCommandHandler {
	var f commands.ProofUoWFactory = FuncProofUoWFactory(func() commands.ProofUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCaptureSignatureCommandHandler(f, c.fileStore)
}

func (c *CompositionRoot) CreateGetNextActivityQueryHandler() queries.GetNextActivityQueryHandler {
	// Read-only lookup, no transaction needed. The repository runs on the
	// base connection.
	return queries.NewGetNextActivityQueryHandler(c.uowFactory.Create().OrderRepository(), c.flowProvider)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the HTTP server with all handlers attached.
func (c *CompositionRoot) CreateHTTPServer() *inhttp.Server {
	return inhttp.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateDispatchOrderCommandHandler(),
		c.CreateStartOrderCommandHandler(),
		c.CreateUpdateActivityCommandHandler(),
		c.CreateCompleteOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateSetDestinationCommandHandler(),
		c.CreateScheduleOrderCommandHandler(),
		c.CreateCaptureQrScanCommandHandler(),
		c.CreateCaptureSignatureCommandHandler(),
		c.CreateGetNextActivityQueryHandler(),
		c.CreateGetActiveOrdersQueryHandler(),
	)
}

// CreateJobManager builds the background job manager.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateDispatchDueOrdersCommandHandler(), c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncProofUoWFactory func() commands.ProofUoW

func (f FuncProofUoWFactory) Create() commands.ProofUoW {
	return f()
}
