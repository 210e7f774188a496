package services

import (
	"context"
	"sync"
	"time"

	"github.com/integralvisionpss-art/inmobiliaria/domain"
	"github.com/integralvisionpss-art/inmobiliaria/events"
	"github.com/integralvisionpss-art/inmobiliaria/repositories"

	"github.com/stretchr/testify/mock"
)

// ============================================
// MOCKS de repositorios y adaptadores
// ============================================

type mockPropiedadRepository struct {
	mock.Mock
}

func (m *mockPropiedadRepository) Buscar(ctx context.Context, pred repositories.Predicado, limit, offset int) ([]domain.PropiedadListado, int64, error) {
	args := m.Called(ctx, pred, limit, offset)
	filas, _ := args.Get(0).([]domain.PropiedadListado)
	return filas, args.Get(1).(int64), args.Error(2)
}

func (m *mockPropiedadRepository) ObtenerPorID(ctx context.Context, id uint) (*domain.PropiedadListado, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PropiedadListado), args.Error(1)
}

func (m *mockPropiedadRepository) FotosDe(ctx context.Context, ids []uint) (map[uint][]domain.Foto, error) {
	args := m.Called(ctx, ids)
	res, _ := args.Get(0).(map[uint][]domain.Foto)
	return res, args.Error(1)
}

func (m *mockPropiedadRepository) CaracteristicasDe(ctx context.Context, ids []uint) (map[uint][]domain.Caracteristica, error) {
	args := m.Called(ctx, ids)
	res, _ := args.Get(0).(map[uint][]domain.Caracteristica)
	return res, args.Error(1)
}

func (m *mockPropiedadRepository) Similares(ctx context.Context, p *domain.Propiedad, limite int) ([]domain.PropiedadListado, error) {
	args := m.Called(ctx, p, limite)
	res, _ := args.Get(0).([]domain.PropiedadListado)
	return res, args.Error(1)
}

func (m *mockPropiedadRepository) IncrementarVistas(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPropiedadRepository) Crear(ctx context.Context, p *domain.Propiedad, fotos []domain.Foto, cars []domain.Caracteristica) error {
	return m.Called(ctx, p, fotos, cars).Error(0)
}

func (m *mockPropiedadRepository) CambiarEstado(ctx context.Context, id uint, actual, nuevo domain.EstadoPropiedad) error {
	return m.Called(ctx, id, actual, nuevo).Error(0)
}

func (m *mockPropiedadRepository) Existe(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockFavoritoRepository struct {
	mock.Mock
}

func (m *mockFavoritoRepository) Alternar(ctx context.Context, usuarioID, propiedadID uint) (bool, error) {
	args := m.Called(ctx, usuarioID, propiedadID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFavoritoRepository) Listar(ctx context.Context, usuarioID uint) ([]domain.PropiedadListado, error) {
	args := m.Called(ctx, usuarioID)
	res, _ := args.Get(0).([]domain.PropiedadListado)
	return res, args.Error(1)
}

type mockChatRepository struct {
	mock.Mock
}

func (m *mockChatRepository) Hilo(ctx context.Context, usuarioID, otroID uint) ([]domain.MensajeHilo, error) {
	args := m.Called(ctx, usuarioID, otroID)
	res, _ := args.Get(0).([]domain.MensajeHilo)
	return res, args.Error(1)
}

func (m *mockChatRepository) MarcarLeidos(ctx context.Context, destinatarioID, remitenteID uint) (int64, error) {
	args := m.Called(ctx, destinatarioID, remitenteID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockChatRepository) Crear(ctx context.Context, msg *domain.MensajeChat) error {
	return m.Called(ctx, msg).Error(0)
}

type mockConsultaRepository struct {
	mock.Mock
}

func (m *mockConsultaRepository) Crear(ctx context.Context, c *domain.Consulta) error {
	return m.Called(ctx, c).Error(0)
}

type mockDashboardRepository struct {
	mock.Mock
}

func (m *mockDashboardRepository) PropiedadesDeVendedor(ctx context.Context, vendedorID uint) ([]domain.PropiedadVendedor, error) {
	args := m.Called(ctx, vendedorID)
	res, _ := args.Get(0).([]domain.PropiedadVendedor)
	return res, args.Error(1)
}

func (m *mockDashboardRepository) EstadisticasDeVendedor(ctx context.Context, vendedorID uint) (*domain.EstadisticasVendedor, error) {
	args := m.Called(ctx, vendedorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EstadisticasVendedor), args.Error(1)
}

func (m *mockDashboardRepository) ConsultasRecientes(ctx context.Context, vendedorID uint, limite int) ([]domain.ConsultaReciente, error) {
	args := m.Called(ctx, vendedorID, limite)
	res, _ := args.Get(0).([]domain.ConsultaReciente)
	return res, args.Error(1)
}

func (m *mockDashboardRepository) EstadisticasGenerales(ctx context.Context) (*domain.EstadisticasAdmin, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EstadisticasAdmin), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publicar(ctx context.Context, ev events.Evento) error {
	return m.Called(ctx, ev).Error(0)
}

func (m *mockPublisher) Close() error {
	return nil
}

// mockMailer avisa por canal cuando se envió, porque el servicio notifica
// en una goroutine
type mockMailer struct {
	mu       sync.Mutex
	enviados []string
	listo    chan struct{}
	err      error
}

func newMockMailer() *mockMailer {
	return &mockMailer{listo: make(chan struct{}, 1)}
}

func (m *mockMailer) NotificarConsulta(_ context.Context, para, _ string, _ domain.Consulta) error {
	m.mu.Lock()
	m.enviados = append(m.enviados, para)
	m.mu.Unlock()
	m.listo <- struct{}{}
	return m.err
}

func (m *mockMailer) esperar(d time.Duration) bool {
	select {
	case <-m.listo:
		return true
	case <-time.After(d):
		return false
	}
}

// mockUserRepository guarda usuarios en memoria
type mockUserRepository struct {
	users  map[uint]*domain.Usuario
	logins map[uint]time.Time
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:  make(map[uint]*domain.Usuario),
		logins: make(map[uint]time.Time),
	}
}

func (m *mockUserRepository) Create(_ context.Context, user *domain.Usuario) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return domain.ErrConflict
		}
	}
	// Simular auto-increment del ID
	user.ID = uint(len(m.users) + 1)
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetByID(_ context.Context, id uint) (*domain.Usuario, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (m *mockUserRepository) GetActivoByID(ctx context.Context, id uint) (*domain.Usuario, error) {
	user, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.Activo {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (m *mockUserRepository) GetByEmail(_ context.Context, email string) (*domain.Usuario, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepository) ActualizarUltimoLogin(_ context.Context, id uint, cuando time.Time) error {
	m.logins[id] = cuando
	return nil
}
