//go:build integration

package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/integralvisionpss-art/inmobiliaria/config"
	"github.com/integralvisionpss-art/inmobiliaria/domain"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// nuevaDBMySQL levanta un MySQL 8 descartable y devuelve la base migrada.
// Se corre con: go test -tags integration ./repositories/...
func nuevaDBMySQL(t *testing.T) *gorm.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "no se pudo crear el pool de docker")
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker no disponible: %v", err)
	}
	pool.MaxWait = 2 * time.Minute

	recurso, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=secret",
			"MYSQL_DATABASE=inmobiliaria_test",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "no se pudo levantar MySQL")
	t.Cleanup(func() { _ = pool.Purge(recurso) })

	cfg := &config.Config{
		DBDriver:       "mysql",
		DBHost:         "localhost",
		DBPort:         recurso.GetPort("3306/tcp"),
		DBUser:         "root",
		DBPass:         "secret",
		DBName:         "inmobiliaria_test",
		DBMaxOpenConns: 5,
		DBMaxIdleConns: 2,
	}

	var db *gorm.DB
	err = pool.Retry(func() error {
		var errConexion error
		db, errConexion = NewDatabase(cfg, zap.NewNop())
		return errConexion
	})
	require.NoError(t, err, "MySQL no respondió a tiempo")
	t.Cleanup(func() { _ = Cerrar(db) })
	return db
}

func TestMySQL_FlujoCompleto(t *testing.T) {
	db := nuevaDBMySQL(t)
	ctx := context.Background()

	props := NewPropiedadRepository(db)
	users := NewUserRepository(db)
	favoritos := NewFavoritoRepository(db)

	vendedor := crearUsuarioPrueba(t, db, "vendedor@inmo.com", domain.RolVendedor)
	cliente := crearUsuarioPrueba(t, db, "cliente@inmo.com", domain.RolCliente)

	t.Run("email duplicado llega como conflicto", func(t *testing.T) {
		err := users.Create(ctx, &domain.Usuario{
			Nombre: "Otro", Email: "vendedor@inmo.com", Password: "hash", Rol: domain.RolCliente, Activo: true,
		})
		assert.True(t, errors.Is(err, domain.ErrConflict), "error: %v", err)
	})

	casa := crearPropiedadPrueba(t, props, vendedor.ID, propiedadPrueba{precio: 120000, hab: 3}, "/uploads/a.jpg", "/uploads/b.jpg")
	crearPropiedadPrueba(t, props, vendedor.ID, propiedadPrueba{precio: 95000, hab: 2})
	crearPropiedadPrueba(t, props, vendedor.ID, propiedadPrueba{tipo: "departamento", ciudad: "Rosario", operacion: domain.OperacionAlquiler, precio: 900, hab: 1})

	t.Run("búsqueda con filtros y conteo", func(t *testing.T) {
		pred := PredicadoBusquedaPublica(domain.FiltrosPropiedad{
			Operacion: str("venta"),
			Ciudad:    str("córdoba"),
		})
		filas, total, err := props.Buscar(ctx, pred, 12, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, filas, 2)
		for _, f := range filas {
			assert.Equal(t, domain.OperacionVenta, f.Operacion)
		}
	})

	t.Run("detalle con foto principal y vistas", func(t *testing.T) {
		require.NoError(t, props.IncrementarVistas(ctx, casa.ID))
		detalle, err := props.ObtenerPorID(ctx, casa.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, detalle.Vistas)
		require.NotNil(t, detalle.FotoPrincipal)
		assert.Equal(t, "/uploads/a.jpg", *detalle.FotoPrincipal)

		fotos, err := props.FotosDe(ctx, []uint{casa.ID})
		require.NoError(t, err)
		require.Len(t, fotos[casa.ID], 2)
		assert.Equal(t, 1, fotos[casa.ID][0].Orden)
		assert.Equal(t, 2, fotos[casa.ID][1].Orden)
	})

	t.Run("cambio de estado condicional", func(t *testing.T) {
		require.NoError(t, props.CambiarEstado(ctx, casa.ID, domain.EstadoDisponible, domain.EstadoVendida))
		err := props.CambiarEstado(ctx, casa.ID, domain.EstadoDisponible, domain.EstadoAlquilada)
		assert.True(t, errors.Is(err, domain.ErrConflict))
	})

	t.Run("favorito alterna", func(t *testing.T) {
		agregado, err := favoritos.Alternar(ctx, cliente.ID, casa.ID)
		require.NoError(t, err)
		assert.True(t, agregado)

		lista, err := favoritos.Listar(ctx, cliente.ID)
		require.NoError(t, err)
		assert.Len(t, lista, 1)

		agregado, err = favoritos.Alternar(ctx, cliente.ID, casa.ID)
		require.NoError(t, err)
		assert.False(t, agregado)
	})

	t.Run("panel de administración", func(t *testing.T) {
		est, err := NewDashboardRepository(db).EstadisticasGenerales(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), est.Totales.Propiedades)
		assert.Equal(t, int64(2), est.Totales.Usuarios)
	})
}
