package wizard

import "github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/model"

// DemoCompany is the prefilled company used when a session starts in demo mode
var DemoCompany = model.Company{
	LegalName:      "Empresa Demo GeoVictoria SpA",
	TradeName:      "Empresa Demo",
	TaxID:          "11.111.111-1",
	LineOfBusiness: "Servicios de control de asistencia",
	Address:        "Av. Siempre Viva 123",
	Commune:        "Santiago",
	BillingEmail:   "facturacion@empresa-demo.cl",
	Phone:          "+56 9 9123 4567",
	System:         "GeoVictoria BOX",
	Industry:       "Retail / Servicios",
}

// DemoAdmin is the prefilled administrator used in demo mode
var DemoAdmin = model.Admin{
	Name:  "Administrador Demo",
	TaxID: "11.111.111-1",
	Phone: "+56 9 9988 7766",
	Email: "admin@empresa-demo.cl",
}

// DemoGroups are the group names seeded in demo mode
var DemoGroups = []string{"GTS", "Soporte", "Comercial"}
