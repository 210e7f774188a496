package repositories

import (
	"context"
	"testing"

	"github.com/integralvisionpss-art/inmobiliaria/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_Vendedor(t *testing.T) {
	db := nuevaDBPrueba(t)
	dash := NewDashboardRepository(db)
	props := NewPropiedadRepository(db)
	consultas := NewConsultaRepository(db)
	ctx := context.Background()

	vendedor := crearUsuarioPrueba(t, db, "v@inmo.com", domain.RolVendedor)
	otroVendedor := crearUsuarioPrueba(t, db, "v2@inmo.com", domain.RolVendedor)

	conFotos := crearPropiedadPrueba(t, props, vendedor.ID, propiedadPrueba{precio: 10, destacada: true}, "a.jpg", "b.jpg")
	vendida := crearPropiedadPrueba(t, props, vendedor.ID, propiedadPrueba{precio: 20})
	require.NoError(t, props.CambiarEstado(ctx, vendida.ID, domain.EstadoDisponible, domain.EstadoVendida))
	ajena := crearPropiedadPrueba(t, props, otroVendedor.ID, propiedadPrueba{precio: 30})

	require.NoError(t, consultas.Crear(ctx, &domain.Consulta{PropiedadID: conFotos.ID, Nombre: "Ana", Email: "ana@x.com", Mensaje: "Hola"}))
	require.NoError(t, consultas.Crear(ctx, &domain.Consulta{PropiedadID: ajena.ID, Nombre: "Beto", Email: "beto@x.com", Mensaje: "Hola"}))

	filas, err := dash.PropiedadesDeVendedor(ctx, vendedor.ID)
	require.NoError(t, err)
	require.Len(t, filas, 2)
	for _, f := range filas {
		if f.ID == conFotos.ID {
			assert.Equal(t, int64(2), f.TotalFotos)
			assert.Equal(t, int64(1), f.TotalConsultas)
			require.NotNil(t, f.FotoPrincipal)
			assert.Equal(t, "a.jpg", *f.FotoPrincipal)
		} else {
			assert.Equal(t, int64(0), f.TotalFotos)
			assert.Nil(t, f.FotoPrincipal)
		}
	}

	est, err := dash.EstadisticasDeVendedor(ctx, vendedor.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EstadisticasVendedor{Total: 2, Disponibles: 1, VendidasAlquiladas: 1, Destacadas: 1}, *est)

	recientes, err := dash.ConsultasRecientes(ctx, vendedor.ID, 10)
	require.NoError(t, err)
	require.Len(t, recientes, 1)
	assert.Equal(t, "Ana", recientes[0].Nombre)
	assert.Equal(t, conFotos.Titulo, recientes[0].PropiedadTitulo)
	assert.Equal(t, "pendiente", recientes[0].Estado)
}

func TestDashboard_EstadisticasGenerales(t *testing.T) {
	db := nuevaDBPrueba(t)
	dash := NewDashboardRepository(db)
	props := NewPropiedadRepository(db)
	ctx := context.Background()

	vendedor := crearUsuarioPrueba(t, db, "v@inmo.com", domain.RolVendedor)
	crearUsuarioPrueba(t, db, "a@inmo.com", domain.RolAdmin)
	crearUsuarioPrueba(t, db, "c@inmo.com", domain.RolCliente)
	for i := 0; i < 3; i++ {
		crearPropiedadPrueba(t, props, vendedor.ID, propiedadPrueba{precio: 10})
	}
	for i := 0; i < 4; i++ {
		crearPropiedadPrueba(t, props, vendedor.ID, propiedadPrueba{tipo: "departamento", operacion: domain.OperacionAlquiler, precio: 10})
	}

	est, err := dash.EstadisticasGenerales(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), est.Totales.Propiedades)
	assert.Equal(t, int64(3), est.Totales.Usuarios)
	assert.Equal(t, int64(0), est.Totales.Consultas)

	require.Len(t, est.PropiedadesPorTipo, 2)
	assert.Equal(t, "departamento", est.PropiedadesPorTipo[0].Valor)
	assert.Equal(t, int64(4), est.PropiedadesPorTipo[0].Cantidad)
	assert.Equal(t, "tipo", est.PropiedadesPorTipo[0].Clave)
	assert.Len(t, est.UsuariosPorRol, 3)
	assert.Empty(t, est.ConsultasPorEstado)
	assert.Len(t, est.PropiedadesRecientes, 5)
}
