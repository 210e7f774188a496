package domain

// FiltrosPropiedad son los filtros opcionales de la búsqueda pública.
// Un puntero nil significa "sin filtro".
type FiltrosPropiedad struct {
	Tipo            *string
	Operacion       *string
	Ciudad          *string
	Barrio          *string
	MinPrecio       *float64
	MaxPrecio       *float64
	MinHabitaciones *int
	MaxHabitaciones *int
	Destacada       *bool
	VendedorID      *uint
}
