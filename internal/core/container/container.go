package container

import (
	"database/sql"

	"go.uber.org/zap"

	auditLogRepo "github.com/blazinaj/roboconfig-sub000/internal/auditlog"
	"github.com/blazinaj/roboconfig-sub000/internal/catalog"
	"github.com/blazinaj/roboconfig-sub000/internal/integrations/assistant"
	"github.com/blazinaj/roboconfig-sub000/internal/integrations/payments"
	"github.com/blazinaj/roboconfig-sub000/internal/inventory"
	"github.com/blazinaj/roboconfig-sub000/internal/machines"
	"github.com/blazinaj/roboconfig-sub000/internal/orders"
	"github.com/blazinaj/roboconfig-sub000/internal/organizations"
	"github.com/blazinaj/roboconfig-sub000/internal/pricing"
	"github.com/blazinaj/roboconfig-sub000/internal/repository"
	"github.com/blazinaj/roboconfig-sub000/internal/suppliers"
	"github.com/blazinaj/roboconfig-sub000/internal/users"
	"github.com/blazinaj/roboconfig-sub000/pkg/auditlog"
	"github.com/blazinaj/roboconfig-sub000/pkg/security"
)

type Container struct {
	Repository          *repository.Repository
	AuditLog            *auditlog.Auditlog
	AuditLogHandler     *auditLogRepo.Handler
	LoginHandler        *security.LoginHandler
	ComponentHandler    *catalog.ComponentHandler
	InventoryHandler    *inventory.InventoryHandler
	MachineHandler      *machines.MachineHandler
	OrderHandler        *orders.OrderHandler
	SupplierHandler     *suppliers.SupplierHandler
	OrganizationHandler *organizations.OrganizationHandler
	UserHandler         *users.UsersHandler
	PricingHandler      *pricing.PricingHandler
	AssistantHandler    *assistant.AssistantHandler
	PaymentsHandler     *payments.PaymentsHandler
}

func NewAppContainer(db *sql.DB, logger *zap.Logger) *Container {
	repo := repository.NewRepository(db)
	auditStore := auditLogRepo.NewRepository(repo)
	auditLog := auditlog.NewAuditLog(auditStore, logger)
	auditLogHandler := auditLogRepo.NewHandler(auditStore)

	organizationRepo := organizations.NewRepository(repo)
	guard := organizations.NewMembershipGuard(organizationRepo)
	organizationHandler := organizations.NewOrganizationHandler(organizationRepo, guard, auditLog)

	componentRepo := catalog.NewRepository(repo)
	componentHandler := catalog.NewComponentHandler(repo, componentRepo, guard, auditLog)

	itemRepo := inventory.NewRepository(repo)
	ledger := inventory.NewLedgerService(repo)
	inventoryHandler := inventory.NewInventoryHandler(repo, itemRepo, ledger, guard, auditLog)

	machineRepo := machines.NewRepository(repo)
	machineService := machines.NewService(repo, machineRepo)
	machineHandler := machines.NewMachineHandler(repo, machineRepo, machineService, guard, auditLog)

	orderRepo := orders.NewRepository(repo)
	receivingService := orders.NewReceivingService(repo, orderRepo)
	orderHandler := orders.NewOrderHandler(repo, orderRepo, receivingService, guard, auditLog)

	supplierRepo := suppliers.NewRepository(repo)
	supplierHandler := suppliers.NewSupplierHandler(supplierRepo, guard, auditLog)

	userRepo := users.NewRepository(repo)
	userHandler := users.NewHandler(userRepo)

	var priceSource pricing.PriceSource = pricing.NewSimulatedSource()
	if marketplace := pricing.NewMarketplaceSource(); marketplace.Configured() {
		priceSource = marketplace
	}
	estimator := pricing.NewEstimator(priceSource, componentRepo, machineRepo)
	pricingHandler := pricing.NewPricingHandler(estimator)

	assistantService := assistant.NewAssistantService()
	assistantHandler := assistant.NewAssistantHandler(assistantService, componentRepo)

	paymentsService := payments.NewPaymentsService()
	subscriptionRepo := payments.NewSubscriptionRepository(repo)
	paymentsHandler := payments.NewPaymentsHandler(paymentsService, subscriptionRepo, logger)

	return &Container{
		Repository:          repo,
		AuditLog:            auditLog,
		AuditLogHandler:     auditLogHandler,
		LoginHandler:        security.NewLoginHandler(repo),
		ComponentHandler:    componentHandler,
		InventoryHandler:    inventoryHandler,
		MachineHandler:      machineHandler,
		OrderHandler:        orderHandler,
		SupplierHandler:     supplierHandler,
		OrganizationHandler: organizationHandler,
		UserHandler:         userHandler,
		PricingHandler:      pricingHandler,
		AssistantHandler:    assistantHandler,
		PaymentsHandler:     paymentsHandler,
	}
}
