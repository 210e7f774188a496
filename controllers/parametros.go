package controllers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/integralvisionpss-art/inmobiliaria/domain"
	"github.com/integralvisionpss-art/inmobiliaria/dto"

	"github.com/gin-gonic/gin"
)

// parseBusqueda convierte los query params de GET /api/propiedades.
// Un parámetro vacío cuenta como ausente; uno mal formado es un 400.
func parseBusqueda(c *gin.Context) (dto.BuscarPropiedadesRequest, error) {
	var (
		req dto.BuscarPropiedadesRequest
		err error
		f   = &req.Filtros
	)

	f.Tipo = queryTexto(c, "tipo")
	f.Operacion = queryTexto(c, "operacion")
	f.Ciudad = queryTexto(c, "ciudad")
	f.Barrio = queryTexto(c, "barrio")

	if f.MinPrecio, err = queryFloat(c, "minPrecio"); err != nil {
		return req, err
	}
	if f.MaxPrecio, err = queryFloat(c, "maxPrecio"); err != nil {
		return req, err
	}
	if f.MinHabitaciones, err = queryEntero(c, "minHabitaciones"); err != nil {
		return req, err
	}
	if f.MaxHabitaciones, err = queryEntero(c, "maxHabitaciones"); err != nil {
		return req, err
	}
	if f.Destacada, err = queryBool(c, "destacada"); err != nil {
		return req, err
	}
	if f.VendedorID, err = queryUint(c, "vendedor_id"); err != nil {
		return req, err
	}

	page, err := queryEntero(c, "page")
	if err != nil {
		return req, err
	}
	if page != nil {
		req.Page = *page
	}
	limit, err := queryEntero(c, "limit")
	if err != nil {
		return req, err
	}
	if limit != nil {
		req.Limit = *limit
	}
	return req, nil
}

func queryTexto(c *gin.Context, clave string) *string {
	v := strings.TrimSpace(c.Query(clave))
	if v == "" {
		return nil
	}
	return &v
}

func queryFloat(c *gin.Context, clave string) (*float64, error) {
	v := queryTexto(c, clave)
	if v == nil {
		return nil, nil
	}
	n, err := strconv.ParseFloat(*v, 64)
	if err != nil {
		return nil, malFormado(clave)
	}
	return &n, nil
}

func queryEntero(c *gin.Context, clave string) (*int, error) {
	v := queryTexto(c, clave)
	if v == nil {
		return nil, nil
	}
	n, err := strconv.Atoi(*v)
	if err != nil {
		return nil, malFormado(clave)
	}
	return &n, nil
}

func queryUint(c *gin.Context, clave string) (*uint, error) {
	v := queryTexto(c, clave)
	if v == nil {
		return nil, nil
	}
	n, err := strconv.ParseUint(*v, 10, 32)
	if err != nil {
		return nil, malFormado(clave)
	}
	u := uint(n)
	return &u, nil
}

func queryBool(c *gin.Context, clave string) (*bool, error) {
	v := queryTexto(c, clave)
	if v == nil {
		return nil, nil
	}
	b, err := strconv.ParseBool(*v)
	if err != nil {
		return nil, malFormado(clave)
	}
	return &b, nil
}

func malFormado(clave string) error {
	return fmt.Errorf("%w: el parámetro %s tiene un formato inválido", domain.ErrValidation, clave)
}
