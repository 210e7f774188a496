package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/integralvisionpss-art/inmobiliaria/domain"
	"github.com/integralvisionpss-art/inmobiliaria/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// autenticadorFijo acepta un único token por usuario
type autenticadorFijo map[string]*domain.Usuario

func (a autenticadorFijo) Autenticar(_ context.Context, token string) (*domain.Usuario, error) {
	u, ok := a[token]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return u, nil
}

func routerProtegido(roles ...domain.Rol) *gin.Engine {
	auth := autenticadorFijo{
		"tok-cliente":  {ID: 1, Rol: domain.RolCliente},
		"tok-vendedor": {ID: 2, Rol: domain.RolVendedor},
		"tok-admin":    {ID: 3, Rol: domain.RolAdmin},
	}
	log := zap.NewNop()

	r := gin.New()
	g := r.Group("/", AuthMiddleware(auth, log))
	if len(roles) > 0 {
		g.Use(RequerirRol(log, roles...))
	}
	g.GET("/privado", func(c *gin.Context) {
		u, _ := UsuarioActual(c)
		c.JSON(http.StatusOK, gin.H{"id": u.ID})
	})
	return r
}

func pedir(r http.Handler, metodo, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(metodo, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := routerProtegido()

	casos := []struct {
		nombre string
		header string
		status int
	}{
		{"sin header", "", http.StatusUnauthorized},
		{"sin Bearer", "tok-cliente", http.StatusUnauthorized},
		{"Bearer vacío", "Bearer ", http.StatusUnauthorized},
		{"token inválido", "Bearer otro", http.StatusUnauthorized},
		{"token válido", "Bearer tok-cliente", http.StatusOK},
	}

	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			w := pedir(r, http.MethodGet, "/privado", tc.header)
			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"Acceso denegado"}`, w.Body.String())
			}
		})
	}
}

func TestRequerirRol(t *testing.T) {
	r := routerProtegido(domain.RolVendedor, domain.RolAdmin)

	w := pedir(r, http.MethodGet, "/privado", "Bearer tok-cliente")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Permisos insuficientes"}`, w.Body.String())

	w = pedir(r, http.MethodGet, "/privado", "Bearer tok-vendedor")
	assert.Equal(t, http.StatusOK, w.Code)

	w = pedir(r, http.MethodGet, "/privado", "Bearer tok-admin")
	assert.Equal(t, http.StatusOK, w.Code)

	// sin token el guard de rol ni se evalúa
	w = pedir(r, http.MethodGet, "/privado", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAutorizar(t *testing.T) {
	admin := &domain.Usuario{Rol: domain.RolAdmin}

	assert.True(t, Autorizar(admin).Permitido)
	assert.True(t, Autorizar(admin, domain.RolAdmin).Permitido)

	d := Autorizar(&domain.Usuario{Rol: domain.RolCliente}, domain.RolAdmin)
	assert.False(t, d.Permitido)
	assert.NotEmpty(t, d.Motivo)

	assert.False(t, Autorizar(nil).Permitido)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS("http://localhost:5173"))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := pedir(r, http.MethodOptions, "/x", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	w = pedir(r, http.MethodGet, "/x", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(20 * time.Millisecond))
	r.GET("/lento", func(c *gin.Context) {
		select {
		case <-c.Request.Context().Done():
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "vencido"})
		case <-time.After(time.Second):
			c.Status(http.StatusOK)
		}
	})

	w := pedir(r, http.MethodGet, "/lento", "")
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestObservar(t *testing.T) {
	m := metrics.New("test")
	r := gin.New()
	r.Use(Observar(zap.NewNop(), m))
	r.GET("/api/propiedades/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	pedir(r, http.MethodGet, "/api/propiedades/1", "")
	pedir(r, http.MethodGet, "/api/propiedades/2", "")
	pedir(r, http.MethodGet, "/no-existe", "")

	assert.Equal(t, 2.0, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/propiedades/:id", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "sin_ruta", "404")))
}

func TestUsuarioActual_SinUsuario(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := UsuarioActual(c)
	require.False(t, ok)

	c.Set(claveUsuario, errors.New("otra cosa"))
	_, ok = UsuarioActual(c)
	assert.False(t, ok)
}
