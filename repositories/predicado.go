package repositories

import (
	"fmt"
	"strings"

	"github.com/integralvisionpss-art/inmobiliaria/domain"

	"gorm.io/gorm"
)

// TipoClausula identifica cómo se compara una columna con su valor
type TipoClausula string

const (
	ClausulaIgualdad TipoClausula = "igualdad"
	ClausulaContiene TipoClausula = "contiene"
	ClausulaMinimo   TipoClausula = "minimo"
	ClausulaMaximo   TipoClausula = "maximo"
	ClausulaBooleano TipoClausula = "booleano"
)

// Clausula es una condición con exactamente un parámetro
type Clausula struct {
	Tipo    TipoClausula
	Columna string
	Valor   interface{}
}

// SQL devuelve el fragmento con su placeholder y el valor a enlazar
func (c Clausula) SQL() (string, interface{}) {
	switch c.Tipo {
	case ClausulaContiene:
		return fmt.Sprintf("LOWER(%s) LIKE ?", c.Columna), "%" + strings.ToLower(fmt.Sprint(c.Valor)) + "%"
	case ClausulaMinimo:
		return c.Columna + " >= ?", c.Valor
	case ClausulaMaximo:
		return c.Columna + " <= ?", c.Valor
	default:
		// igualdad y booleano
		return c.Columna + " = ?", c.Valor
	}
}

// Predicado es una conjunción ordenada de cláusulas
type Predicado struct {
	Clausulas []Clausula
}

// SQL une las cláusulas con AND. Sin cláusulas devuelve "" y nil.
func (p Predicado) SQL() (string, []interface{}) {
	if len(p.Clausulas) == 0 {
		return "", nil
	}
	partes := make([]string, 0, len(p.Clausulas))
	params := make([]interface{}, 0, len(p.Clausulas))
	for _, c := range p.Clausulas {
		frag, valor := c.SQL()
		partes = append(partes, frag)
		params = append(params, valor)
	}
	return strings.Join(partes, " AND "), params
}

// Aplicar agrega el WHERE a la consulta solo si hay cláusulas
func (p Predicado) Aplicar(q *gorm.DB) *gorm.DB {
	frag, params := p.SQL()
	if frag == "" {
		return q
	}
	return q.Where(frag, params...)
}

// ConPrimero devuelve un predicado nuevo con c delante del resto
func (p Predicado) ConPrimero(c Clausula) Predicado {
	clausulas := make([]Clausula, 0, len(p.Clausulas)+1)
	clausulas = append(clausulas, c)
	clausulas = append(clausulas, p.Clausulas...)
	return Predicado{Clausulas: clausulas}
}

// ConstruirPredicado traduce los filtros de búsqueda a cláusulas sobre el
// alias "p" de propiedades. Los strings vacíos se ignoran.
func ConstruirPredicado(f domain.FiltrosPropiedad) Predicado {
	var cs []Clausula
	texto := func(tipo TipoClausula, col string, v *string) {
		if v != nil && *v != "" {
			cs = append(cs, Clausula{Tipo: tipo, Columna: col, Valor: *v})
		}
	}

	texto(ClausulaIgualdad, "p.tipo", f.Tipo)
	texto(ClausulaIgualdad, "p.operacion", f.Operacion)
	texto(ClausulaContiene, "p.ciudad", f.Ciudad)
	texto(ClausulaContiene, "p.barrio", f.Barrio)
	if f.MinPrecio != nil {
		cs = append(cs, Clausula{Tipo: ClausulaMinimo, Columna: "p.precio", Valor: *f.MinPrecio})
	}
	if f.MaxPrecio != nil {
		cs = append(cs, Clausula{Tipo: ClausulaMaximo, Columna: "p.precio", Valor: *f.MaxPrecio})
	}
	if f.MinHabitaciones != nil {
		cs = append(cs, Clausula{Tipo: ClausulaMinimo, Columna: "p.habitaciones", Valor: *f.MinHabitaciones})
	}
	if f.MaxHabitaciones != nil {
		cs = append(cs, Clausula{Tipo: ClausulaMaximo, Columna: "p.habitaciones", Valor: *f.MaxHabitaciones})
	}
	if f.Destacada != nil {
		cs = append(cs, Clausula{Tipo: ClausulaBooleano, Columna: "p.destacada", Valor: *f.Destacada})
	}
	if f.VendedorID != nil {
		cs = append(cs, Clausula{Tipo: ClausulaIgualdad, Columna: "p.vendedor_id", Valor: *f.VendedorID})
	}

	return Predicado{Clausulas: cs}
}

// PredicadoBusquedaPublica agrega delante la condición fija de la búsqueda
// pública: solo propiedades disponibles. No se puede desactivar con filtros.
func PredicadoBusquedaPublica(f domain.FiltrosPropiedad) Predicado {
	return ConstruirPredicado(f).ConPrimero(Clausula{
		Tipo:    ClausulaIgualdad,
		Columna: "p.estado",
		Valor:   string(domain.EstadoDisponible),
	})
}
