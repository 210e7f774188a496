package repositories

import (
	"context"
	"fmt"
	"testing"

	"github.com/integralvisionpss-art/inmobiliaria/domain"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// nuevaDBPrueba abre una base SQLite en memoria con una única conexión para
// que todas las sesiones vean las mismas tablas.
func nuevaDBPrueba(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Conectar(sqlite.Open("file::memory:"), Pool{MaxOpenConns: 1, MaxIdleConns: 1})
	require.NoError(t, err)
	require.NoError(t, Migrar(db))
	t.Cleanup(func() { _ = Cerrar(db) })
	return db
}

func crearUsuarioPrueba(t *testing.T, db *gorm.DB, email string, rol domain.Rol) *domain.Usuario {
	t.Helper()
	u := &domain.Usuario{
		Nombre:   "Usuario " + email,
		Email:    email,
		Password: "hash",
		Telefono: "351000000",
		Rol:      rol,
		Activo:   true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

type propiedadPrueba struct {
	tipo      string
	operacion domain.Operacion
	precio    float64
	ciudad    string
	hab       int
	destacada bool
}

func crearPropiedadPrueba(t *testing.T, repo PropiedadRepository, vendedorID uint, d propiedadPrueba, fotos ...string) *domain.Propiedad {
	t.Helper()
	if d.tipo == "" {
		d.tipo = "casa"
	}
	if d.operacion == "" {
		d.operacion = domain.OperacionVenta
	}
	if d.ciudad == "" {
		d.ciudad = "Córdoba"
	}
	p := &domain.Propiedad{
		Titulo:       fmt.Sprintf("%s en %s", d.tipo, d.ciudad),
		Descripcion:  "Propiedad de prueba",
		Tipo:         d.tipo,
		Operacion:    d.operacion,
		Precio:       d.precio,
		Moneda:       "USD",
		Ciudad:       d.ciudad,
		Habitaciones: d.hab,
		Estado:       domain.EstadoDisponible,
		Destacada:    d.destacada,
		VendedorID:   vendedorID,
	}
	fs := make([]domain.Foto, 0, len(fotos))
	for _, url := range fotos {
		fs = append(fs, domain.Foto{URLFoto: url})
	}
	require.NoError(t, repo.Crear(context.Background(), p, fs, nil))
	return p
}
