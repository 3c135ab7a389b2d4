package cmd

import (
	"log/slog"

	httpadapter "parcelhub/internal/adapters/in/http"
	"parcelhub/internal/adapters/out/postgres"
	"parcelhub/internal/adapters/out/redisbus"
	"parcelhub/internal/core/application/eventhandlers"
	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/core/events"
	"parcelhub/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB      *gorm.DB
	redisClient *redis.Client
	uowFactory  postgres.GormUnitOfWorkFactory
	logger      *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, redisClient *redis.Client, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:      gormDB,
		redisClient: redisClient,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:      logger,
	}
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateParcelCommandHandler(f)
}

func (c *CompositionRoot) CreateRecordTrackingUpdateCommandHandler() commands.RecordTrackingUpdateCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordTrackingUpdateCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignToConsolidationCommandHandler() commands.AssignToConsolidationCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignToConsolidationCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateConsolidationCommandHandler() commands.CreateConsolidationCommandHandler {
	var f commands.ConsolidationUoWFactory = FuncConsolidationUoWFactory(func() commands.ConsolidationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateConsolidationCommandHandler(f)
}

func (c *CompositionRoot) CreateCompleteConsolidationCommandHandler() commands.CompleteConsolidationCommandHandler {
	var f commands.ConsolidationUoWFactory = FuncConsolidationUoWFactory(func() commands.ConsolidationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteConsolidationCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateConsolidationStatusCommandHandler() commands.UpdateConsolidationStatusCommandHandler {
	var f commands.ConsolidationUoWFactory = FuncConsolidationUoWFactory(func() commands.ConsolidationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateConsolidationStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateWarehouseCommandHandler() commands.CreateWarehouseCommandHandler {
	var f commands.WarehouseUoWFactory = FuncWarehouseUoWFactory(func() commands.WarehouseUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateWarehouseCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateWarehouseUtilizationCommandHandler() commands.UpdateWarehouseUtilizationCommandHandler {
	var f commands.WarehouseUoWFactory = FuncWarehouseUoWFactory(func() commands.WarehouseUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateWarehouseUtilizationCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateWarehouseStatusCommandHandler() commands.UpdateWarehouseStatusCommandHandler {
	var f commands.WarehouseUoWFactory = FuncWarehouseUoWFactory(func() commands.WarehouseUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateWarehouseStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateGetParcelQueryHandler() queries.GetParcelQueryHandler {
	return queries.NewGetParcelQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetParcelByTrackingNumberQueryHandler() queries.GetParcelByTrackingNumberQueryHandler {
	return queries.NewGetParcelByTrackingNumberQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetConsolidationsQueryHandler() queries.GetConsolidationsQueryHandler {
	return queries.NewGetConsolidationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWarehouseQueryHandler() queries.GetWarehouseQueryHandler {
	return queries.NewGetWarehouseQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableWarehousesQueryHandler() queries.GetAvailableWarehousesQueryHandler {
	return queries.NewGetAvailableWarehousesQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every command and query handler into the REST server.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateCreateParcelCommandHandler(),
		c.CreateRecordTrackingUpdateCommandHandler(),
		c.CreateAssignToConsolidationCommandHandler(),
		c.CreateCreateConsolidationCommandHandler(),
		c.CreateUpdateConsolidationStatusCommandHandler(),
		c.CreateCreateWarehouseCommandHandler(),
		c.CreateUpdateWarehouseUtilizationCommandHandler(),
		c.CreateUpdateWarehouseStatusCommandHandler(),
		c.CreateGetParcelQueryHandler(),
		c.CreateGetParcelByTrackingNumberQueryHandler(),
		c.CreateGetConsolidationsQueryHandler(),
		c.CreateGetWarehouseQueryHandler(),
		c.CreateGetAvailableWarehousesQueryHandler(),
	)
}

// CreateEventDispatcher registers every consumer on its topics.
func (c *CompositionRoot) CreateEventDispatcher() *eventhandlers.Dispatcher {
	dispatcher := eventhandlers.NewDispatcher(c.logger)

	capacityUoWFactory := FuncWarehouseCapacityUoWFactory(func() eventhandlers.WarehouseCapacityUoW {
		return c.uowFactory.Create()
	})
	dispatcher.Register(events.TopicParcelConsolidated,
		eventhandlers.NewWarehouseCapacityHandler(capacityUoWFactory, services.NewWarehouseSelector(), c.logger))

	propagationUoWFactory := FuncParcelPropagationUoWFactory(func() eventhandlers.ParcelPropagationUoW {
		return c.uowFactory.Create()
	})
	dispatcher.Register(events.TopicConsolidationStatusChanged,
		eventhandlers.NewParcelPropagationHandler(propagationUoWFactory, c.logger))

	audit := eventhandlers.NewParcelAuditHandler(c.logger)
	dispatcher.Register(events.TopicParcelCreated, audit)
	dispatcher.Register(events.TopicParcelStatusUpdated, audit)
	dispatcher.Register(events.TopicParcelConsolidated, audit)

	return dispatcher
}

// CreateEventConsumer builds the Redis Streams consumer over all consumed
// topics.
func (c *CompositionRoot) CreateEventConsumer(consumerName string) *redisbus.Consumer {
	return redisbus.NewConsumer(
		c.redisClient,
		c.CreateEventDispatcher(),
		"parcelhub",
		consumerName,
		[]string{
			events.TopicParcelCreated,
			events.TopicParcelStatusUpdated,
			events.TopicParcelConsolidated,
			events.TopicConsolidationStatusChanged,
		},
		c.logger,
	)
}

// CreateJobManager wires the background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		&c.uowFactory,
		redisbus.NewPublisher(c.redisClient),
		c.CreateCompleteConsolidationCommandHandler(),
		c.logger,
	)
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type FuncConsolidationUoWFactory func() commands.ConsolidationUoW

func (f FuncConsolidationUoWFactory) Create() commands.ConsolidationUoW {
	return f()
}

type FuncWarehouseUoWFactory func() commands.WarehouseUoW

func (f FuncWarehouseUoWFactory) Create() commands.WarehouseUoW {
	return f()
}

type FuncWarehouseCapacityUoWFactory func() eventhandlers.WarehouseCapacityUoW

func (f FuncWarehouseCapacityUoWFactory) Create() eventhandlers.WarehouseCapacityUoW {
	return f()
}

type FuncParcelPropagationUoWFactory func() eventhandlers.ParcelPropagationUoW

func (f FuncParcelPropagationUoWFactory) Create() eventhandlers.ParcelPropagationUoW {
	return f()
}
