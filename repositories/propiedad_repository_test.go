package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/integralvisionpss-art/inmobiliaria/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestBuscar_PaginacionQuinceResultados(t *testing.T) {
	db := nuevaDBPrueba(t)
	repo := NewPropiedadRepository(db)
	ctx := context.Background()
	vendedor := crearUsuarioPrueba(t, db, "vendedor@inmo.com", domain.RolVendedor)

	for i := 0; i < 15; i++ {
		crearPropiedadPrueba(t, repo, vendedor.ID, propiedadPrueba{precio: 100000 + float64(i)*1000})
	}
	// ruido que no debe aparecer
	crearPropiedadPrueba(t, repo, vendedor.ID, propiedadPrueba{precio: 50000})
	crearPropiedadPrueba(t, repo, vendedor.ID, propiedadPrueba{operacion: domain.OperacionAlquiler, precio: 200000})
	vendida := crearPropiedadPrueba(t, repo, vendedor.ID, propiedadPrueba{precio: 300000})
	require.NoError(t, repo.CambiarEstado(ctx, vendida.ID, domain.EstadoDisponible, domain.EstadoVendida))

	pred := PredicadoBusquedaPublica(domain.FiltrosPropiedad{
		Operacion: str("venta"),
		MinPrecio: f64(100000),
	})

	pagina1, total, err := repo.Buscar(ctx, pred, 12, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
	assert.Len(t, pagina1, 12)

	pagina2, total2, err := repo.Buscar(ctx, pred, 12, 12)
	require.NoError(t, err)
	assert.Equal(t, int64(15), total2)
	assert.Len(t, pagina2, 3)

	vistos := map[uint]bool{}
	for _, p := range append(pagina1, pagina2...) {
		assert.False(t, vistos[p.ID], "propiedad %d repetida entre páginas", p.ID)
		vistos[p.ID] = true
		assert.Equal(t, domain.OperacionVenta, p.Operacion)
		assert.GreaterOrEqual(t, p.Precio, 100000.0)
		assert.Equal(t, domain.EstadoDisponible, p.Estado)
		require.NotNil(t, p.VendedorNombre)
		assert.Equal(t, vendedor.Nombre, *p.VendedorNombre)
	}
}

func TestBuscar_AgregarFiltroNuncaAumentaResultados(t *testing.T) {
	db := nuevaDBPrueba(t)
	repo := NewPropiedadRepository(db)
	ctx := context.Background()
	vendedor := crearUsuarioPrueba(t, db, "v@inmo.com", domain.RolVendedor)

	crearPropiedadPrueba(t, repo, vendedor.ID, propiedadPrueba{tipo: "casa", ciudad: "Córdoba", precio: 90000, hab: 3, destacada: true})
	crearPropiedadPrueba(t, repo, vendedor.ID, propiedadPrueba{tipo: "casa", ciudad: "Villa Carlos Paz", precio: 150000, hab: 4})
	crearPropiedadPrueba(t, repo, vendedor.ID, propiedadPrueba{tipo: "departamento", ciudad: "Rosario", precio: 70000, hab: 1})
	crearPropiedadPrueba(t, repo, vendedor.ID, propiedadPrueba{tipo: "departamento", ciudad: "ROSARIO", operacion: domain.OperacionAlquiler, precio: 800, hab: 2})

	pasos := []domain.FiltrosPropiedad{
		{},
		{Ciudad: str("rosario")},
		{Ciudad: str("rosario"), Tipo: str("departamento")},
		{Ciudad: str("rosario"), Tipo: str("departamento"), MaxHabitaciones: entero(1)},
	}

	anterior := int64(-1)
	for i, f := range pasos {
		_, total, err := repo.Buscar(ctx, PredicadoBusquedaPublica(f), 100, 0)
		require.NoError(t, err)
		if anterior >= 0 {
			assert.LessOrEqual(t, total, anterior, "paso %d", i)
		}
		anterior = total
	}
	assert.Equal(t, int64(1), anterior)

	_, total, err := repo.Buscar(ctx, PredicadoBusquedaPublica(domain.FiltrosPropiedad{Ciudad: str("rosario")}), 100, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total, "contiene no distingue mayúsculas")

	destacadas, _, err := repo.Buscar(ctx, PredicadoBusquedaPublica(domain.FiltrosPropiedad{Destacada: booleano(true)}), 100, 0)
	require.NoError(t, err)
	require.Len(t, destacadas, 1)
	assert.True(t, destacadas[0].Destacada)
}

func TestBuscar_DestacadasPrimero(t *testing.T) {
	db := nuevaDBPrueba(t)
	repo := NewPropiedadRepository(db)
	vendedor := crearUsuarioPrueba(t, db, "v@inmo.com", domain.RolVendedor)

	crearPropiedadPrueba(t, repo, vendedor.ID, propiedadPrueba{precio: 1})
	destacada := crearPropiedadPrueba(t, repo, vendedor.ID, propiedadPrueba{precio: 2, destacada: true})
	crearPropiedadPrueba(t, repo, vendedor.ID, propiedadPrueba{precio: 3})

	filas, _, err := repo.Buscar(context.Background(), PredicadoBusquedaPublica(domain.FiltrosPropiedad{}), 12, 0)
	require.NoError(t, err)
	require.Len(t, filas, 3)
	assert.Equal(t, destacada.ID, filas[0].ID)
}

func TestBuscar_SinResultadosDevuelveSliceVacio(t *testing.T) {
	repo := NewPropiedadRepository(nuevaDBPrueba(t))

	filas, total, err := repo.Buscar(context.Background(), PredicadoBusquedaPublica(domain.FiltrosPropiedad{}), 12, 0)
	require.NoError(t, err)
	assert.NotNil(t, filas)
	assert.Empty(t, filas)
	assert.Equal(t, int64(0), total)
}

func TestCrear_FotosYCaracteristicasEnOrden(t *testing.T) {
	db := nuevaDBPrueba(t)
	repo := NewPropiedadRepository(db)
	ctx := context.Background()
	vendedor := crearUsuarioPrueba(t, db, "v@inmo.com", domain.RolVendedor)

	p := &domain.Propiedad{
		Titulo: "Casa con pileta", Descripcion: "Amplia", Tipo: "casa",
		Operacion: domain.OperacionVenta, Precio: 250000, Moneda: "USD",
		Ciudad: "Córdoba", Estado: domain.EstadoDisponible, VendedorID: vendedor.ID,
	}
	fotos := []domain.Foto{
		{URLFoto: "/uploads/propiedades/c.jpg"},
		{URLFoto: "/uploads/propiedades/a.jpg"},
		{URLFoto: "/uploads/propiedades/b.jpg"},
	}
	cars := []domain.Caracteristica{
		{Caracteristica: "Cochera", Valor: "1"},
		{Caracteristica: "Pileta", Valor: "Sí"},
		{Caracteristica: "Cochera", Valor: "2"},
	}

	require.NoError(t, repo.Crear(ctx, p, fotos, cars))
	require.NotZero(t, p.ID)

	fotosDe, err := repo.FotosDe(ctx, []uint{p.ID})
	require.NoError(t, err)
	require.Len(t, fotosDe[p.ID], 3)
	for i, f := range fotosDe[p.ID] {
		assert.Equal(t, i+1, f.Orden)
		assert.Equal(t, fotos[i].URLFoto, f.URLFoto)
	}

	carsDe, err := repo.CaracteristicasDe(ctx, []uint{p.ID})
	require.NoError(t, err)
	require.Len(t, carsDe[p.ID], 3)
	assert.Equal(t, "Cochera", carsDe[p.ID][0].Caracteristica)
	assert.Equal(t, "Pileta", carsDe[p.ID][1].Caracteristica)
	assert.Equal(t, "2", carsDe[p.ID][2].Valor)

	detalle, err := repo.ObtenerPorID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, detalle.FotoPrincipal)
	// la principal es la de menor orden, no la menor URL
	assert.Equal(t, "/uploads/propiedades/c.jpg", *detalle.FotoPrincipal)
	require.NotNil(t, detalle.VendedorEmail)
	assert.Equal(t, vendedor.Email, *detalle.VendedorEmail)
	assert.Equal(t, 0, detalle.Vistas)
}

func TestCrear_FallaEnFotoRevierteTodo(t *testing.T) {
	db := nuevaDBPrueba(t)
	repo := NewPropiedadRepository(db)
	ctx := context.Background()
	vendedor := crearUsuarioPrueba(t, db, "v@inmo.com", domain.RolVendedor)

	errFalla := errors.New("disco lleno")
	err := db.Callback().Create().Before("gorm:create").Register("test:falla_foto_3", func(tx *gorm.DB) {
		if f, ok := tx.Statement.Dest.(*domain.Foto); ok && f.Orden == 3 {
			_ = tx.AddError(errFalla)
		}
	})
	require.NoError(t, err)

	p := &domain.Propiedad{
		Titulo: "Depto", Descripcion: "Centro", Tipo: "departamento",
		Operacion: domain.OperacionAlquiler, Precio: 900, Moneda: "USD",
		Ciudad: "Rosario", Estado: domain.EstadoDisponible, VendedorID: vendedor.ID,
	}
	fotos := []domain.Foto{{URLFoto: "1"}, {URLFoto: "2"}, {URLFoto: "3"}, {URLFoto: "4"}, {URLFoto: "5"}}

	err = repo.Crear(ctx, p, fotos, []domain.Caracteristica{{Caracteristica: "Balcón", Valor: "Sí"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, errFalla)

	_, err = repo.ObtenerPorID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var n int64
	require.NoError(t, db.Model(&domain.Propiedad{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
	require.NoError(t, db.Model(&domain.Foto{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
}

func TestObtenerPorID_Inexistente(t *testing.T) {
	db := nuevaDBPrueba(t)
	repo := NewPropiedadRepository(db)

	_, err := repo.ObtenerPorID(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.IncrementarVistas(context.Background(), 999))
	var n int64
	require.NoError(t, db.Model(&domain.Propiedad{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
}

func TestIncrementarVistas(t *testing.T) {
	db := nuevaDBPrueba(t)
	repo := NewPropiedadRepository(db)
	ctx := context.Background()
	vendedor := crearUsuarioPrueba(t, db, "v@inmo.com", domain.RolVendedor)
	p := crearPropiedadPrueba(t, repo, vendedor.ID, propiedadPrueba{precio: 10})

	require.NoError(t, repo.IncrementarVistas(ctx, p.ID))
	require.NoError(t, repo.IncrementarVistas(ctx, p.ID))

	detalle, err := repo.ObtenerPorID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, detalle.Vistas)
}

func TestSimilares(t *testing.T) {
	db := nuevaDBPrueba(t)
	repo := NewPropiedadRepository(db)
	ctx := context.Background()
	vendedor := crearUsuarioPrueba(t, db, "v@inmo.com", domain.RolVendedor)

	base := crearPropiedadPrueba(t, repo, vendedor.ID, propiedadPrueba{precio: 10})
	for i := 0; i < 5; i++ {
		crearPropiedadPrueba(t, repo, vendedor.ID, propiedadPrueba{precio: 20})
	}
	crearPropiedadPrueba(t, repo, vendedor.ID, propiedadPrueba{tipo: "departamento", precio: 20})
	crearPropiedadPrueba(t, repo, vendedor.ID, propiedadPrueba{operacion: domain.OperacionAlquiler, precio: 20})

	similares, err := repo.Similares(ctx, base, 4)
	require.NoError(t, err)
	assert.Len(t, similares, 4)
	for _, s := range similares {
		assert.NotEqual(t, base.ID, s.ID)
		assert.Equal(t, "casa", s.Tipo)
		assert.Equal(t, domain.OperacionVenta, s.Operacion)
	}
}

func TestCambiarEstado(t *testing.T) {
	db := nuevaDBPrueba(t)
	repo := NewPropiedadRepository(db)
	ctx := context.Background()
	vendedor := crearUsuarioPrueba(t, db, "v@inmo.com", domain.RolVendedor)
	p := crearPropiedadPrueba(t, repo, vendedor.ID, propiedadPrueba{precio: 10})

	require.NoError(t, repo.CambiarEstado(ctx, p.ID, domain.EstadoDisponible, domain.EstadoAlquilada))

	err := repo.CambiarEstado(ctx, p.ID, domain.EstadoDisponible, domain.EstadoVendida)
	assert.ErrorIs(t, err, domain.ErrConflict)

	existe, err := repo.Existe(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, existe)
	existe, err = repo.Existe(ctx, p.ID+100)
	require.NoError(t, err)
	assert.False(t, existe)
}
