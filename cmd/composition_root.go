package cmd

import (
	"fmt"
	"log/slog"

	inkafka "dispatch/internal/adapters/in/kafka"
	"dispatch/internal/adapters/out/geo"
	outkafka "dispatch/internal/adapters/out/kafka"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/outboxrepo"
	dedup "dispatch/internal/adapters/out/redis"
	"dispatch/internal/core/application/eventhandlers"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters and use cases together. It is the only place
// in the codebase that knows concrete adapter types.
type CompositionRoot struct {
	config Config
	logger *slog.Logger

	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	geoClient ports.GeoClient
	producer  *outkafka.Producer
}

// NewCompositionRoot builds the shared adapters once.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	geoClient, err := geo.NewClient(config.GeoServiceURL)
	if err != nil {
		return nil, fmt.Errorf("create geo client: %w", err)
	}

	producer, err := outkafka.NewProducer(config.KafkaBrokers, config.KafkaOrderStatusChangedTopic)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	return &CompositionRoot{
		config:     config,
		logger:     logger,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		geoClient:  geoClient,
		producer:   producer,
	}, nil
}

// Close releases adapters that hold connections.
func (c *CompositionRoot) Close() error {
	return c.producer.Close()
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateAddStoragePlaceCommandHandler() commands.AddStoragePlaceCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddStoragePlaceCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.geoClient)
}

func (c *CompositionRoot) CreateAssignOrdersCommandHandler() commands.AssignOrdersCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignOrdersCommandHandler(f)
}

func (c *CompositionRoot) CreateMoveCouriersCommandHandler() commands.MoveCouriersCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewMoveCouriersCommandHandler(f)
}

func (c *CompositionRoot) CreateProcessOutboxMessagesCommandHandler() commands.ProcessOutboxMessagesCommandHandler {
	outbox := outboxrepo.NewGormOutboxRepository(c.gormDB)
	registry := eventhandlers.NewRegistry(c.producer)
	return commands.NewProcessOutboxMessagesCommandHandler(outbox, registry)
}

func (c *CompositionRoot) CreateGetAllCouriersQueryHandler() queries.GetAllCouriersQueryHandler {
	return queries.NewGetAllCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUncompletedOrdersQueryHandler() queries.GetUncompletedOrdersQueryHandler {
	return queries.NewGetUncompletedOrdersQueryHandler(c.gormDB)
}

// CreateBasketConfirmedConsumer wires the inbound kafka consumer with its
// redis-backed deduplicator and the create order use case.
func (c *CompositionRoot) CreateBasketConfirmedConsumer() (*inkafka.BasketConfirmedConsumer, error) {
	redisClient := goredis.NewClient(&goredis.Options{Addr: c.config.RedisAddr})

	dedupStore, err := dedup.NewDedupStore(redisClient)
	if err != nil {
		return nil, fmt.Errorf("create dedup store: %w", err)
	}

	createOrderHandler := c.CreateCreateOrderCommandHandler()

	return inkafka.NewBasketConfirmedConsumer(
		c.config.KafkaBrokers,
		c.config.KafkaBasketConfirmedTopic,
		&createOrderHandler,
		dedupStore,
		c.logger,
	)
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
