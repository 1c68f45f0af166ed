package model

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a fresh identifier for a wizard entity
func NewID() string {
	return uuid.NewString()
}

// Admin is the person who will administer the customer account
type Admin struct {
	Name  string `json:"nombre" validate:"required"`
	TaxID string `json:"rut" validate:"required,rut"`
	Phone string `json:"telefono"`
	Email string `json:"correo" validate:"required,looseemail"`
}

// Company holds the customer's legal and billing data
type Company struct {
	LegalName      string `json:"razonSocial" validate:"required"`
	TradeName      string `json:"fantasia"`
	TaxID          string `json:"rut" validate:"required"`
	LineOfBusiness string `json:"giro"`
	Address        string `json:"direccion"`
	Commune        string `json:"comuna"`
	BillingEmail   string `json:"emailFacturacion" validate:"required,looseemail"`
	Phone          string `json:"telefonoContacto"`
	Industry       string `json:"rubro"`
	System         string `json:"sistema" validate:"required"`
}

// Group is a named worker group
type Group struct {
	ID          string `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion,omitempty"`
}

// Worker is one row of the employee roster
type Worker struct {
	ID        string       `json:"id"`
	TaxID     string       `json:"rut" validate:"required,rut"`
	Email     string       `json:"correo" validate:"required,looseemail"`
	FirstName string       `json:"nombres" validate:"required"`
	LastName  string       `json:"apellidos" validate:"required"`
	Group     string       `json:"grupo" validate:"required"`
	GroupID   string       `json:"grupoId,omitempty"`
	PlanStart string       `json:"planInicio"`
	PlanEnd   string       `json:"planFin"`
	Schedule  WeekSchedule `json:"turnos"`
}

// FullName joins first and last names
func (w Worker) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(w.FirstName) + " " + strings.TrimSpace(w.LastName))
}

// BaseShift is a reusable named shift triple
type BaseShift struct {
	ID       string `json:"id"`
	Name     string `json:"nombre"`
	Entrada  string `json:"entrada"`
	Colacion string `json:"colacion"`
	Salida   string `json:"salida"`
}

// Triple returns the shift as a ShiftTriple
func (b BaseShift) Triple() ShiftTriple {
	return ShiftTriple{Entrada: b.Entrada, Colacion: b.Colacion, Salida: b.Salida}
}

// ScheduleTemplate is a named weekly plan referencing base shifts by id
type ScheduleTemplate struct {
	ID   string       `json:"id"`
	Name string       `json:"nombre"`
	Week TemplateWeek `json:"semana"`
}

// Assignment ties a worker to a schedule template for a dated period
type Assignment struct {
	ID         string `json:"id"`
	WorkerID   string `json:"trabajadorId"`
	TemplateID string `json:"planificacionId"`
	From       string `json:"desde"`
	To         string `json:"hasta"`
}

// IsComplete reports whether the assignment references a template and a full period
func (a Assignment) IsComplete() bool {
	return a.TemplateID != "" && a.From != "" && a.To != ""
}

// Payload is the exported onboarding document
type Payload struct {
	Company         Company            `json:"empresa"`
	Admin           Admin              `json:"admin"`
	Groups          []Group            `json:"grupos"`
	BaseShifts      []BaseShift        `json:"turnosBase"`
	GeneralSchedule WeekSchedule       `json:"planificacionGeneral"`
	Workers         []Worker           `json:"trabajadores"`
	Templates       []ScheduleTemplate `json:"planificaciones,omitempty"`
	Assignments     []Assignment       `json:"asignaciones,omitempty"`
}
