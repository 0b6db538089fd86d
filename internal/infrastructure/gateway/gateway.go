// Package gateway elige la implementación del backend de facturación según la configuración:
// el cliente REST o, con BACKEND_URL=memory://, el sustituto en memoria.
package gateway

import (
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/repository"
	"github.com/RosaQuijije/FacturacionWeb/internal/infrastructure/backend"
	"github.com/RosaQuijije/FacturacionWeb/internal/infrastructure/memory"
	"github.com/RosaQuijije/FacturacionWeb/pkg/config"
)

// Repositories puertos del backend de registro.
type Repositories struct {
	Clients  repository.ClientRepository
	Catalogs repository.CatalogRepository
	Services repository.ServiceRepository
	Invoices repository.InvoiceRepository
	Auth     repository.AuthGateway
	Target   string // URL del backend o "memory://"
}

// Open construye los repositorios para cfg.
func Open(cfg config.BackendConfig) Repositories {
	if cfg.InMemory() {
		b := memory.NewBackend(cfg.DemoPassword)
		return Repositories{
			Clients: b.Clients, Catalogs: b.Catalogs, Services: b.Services, Invoices: b.Invoices, Auth: b.Auth,
			Target: "memory://",
		}
	}
	c := backend.NewClient(cfg.URL, cfg.Timeout)
	return Repositories{
		Clients:  backend.NewClientRepo(c),
		Catalogs: backend.NewCatalogRepo(c),
		Services: backend.NewServiceRepo(c),
		Invoices: backend.NewInvoiceRepo(c),
		Auth:     backend.NewAuthGateway(c),
		Target:   c.BaseURL(),
	}
}
