package entity

// Roles aceptados por el servicio.
const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// Actor quien ejecuta la operación; lo entrega el adaptador de identidad.
type Actor struct {
	ID   string
	Role string
}
