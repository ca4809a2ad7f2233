package checkout

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tvojakarta/internal/cart"
	"tvojakarta/internal/orders"
	"tvojakarta/internal/pricing"
	"tvojakarta/internal/shared/middleware"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func newTestEngine(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupCheckoutRoutes(r.Group("/api/v1", middleware.Session()), NewController(svc, nil))
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, sessionID string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.SessionHeader, sessionID)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestController_SubmitAndPollStatus(t *testing.T) {
	f := newFixture(t, NewSimulatedGateway(5*time.Millisecond))
	session := uuid.NewString()
	f.fillCart(t, session)
	r := newTestEngine(f.svc)

	w, env := do(t, r, http.MethodPost, "/api/v1/checkout?lang=en", session, validForm())
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "Processing...", env.Message)

	var started SubmitResponse
	require.NoError(t, json.Unmarshal(env.Data, &started))
	assert.Equal(t, StateSubmitting, started.State)
	assert.Equal(t, 124, started.Quote.Total)
	assert.Equal(t, "/api/v1/checkout/status", started.StatusURL)

	require.Eventually(t, func() bool {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/checkout/status", nil)
		req.Header.Set(middleware.SessionHeader, session)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		var env struct {
			Data Status `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			return false
		}
		return env.Data.State == StateSucceeded && env.Data.OrderNumber != ""
	}, 2*time.Second, 5*time.Millisecond)
}

func TestController_ValidationError(t *testing.T) {
	f := newFixture(t, NewSimulatedGateway(0))
	session := uuid.NewString()
	f.fillCart(t, session)
	r := newTestEngine(f.svc)

	form := validForm()
	form.CVV = "12"
	w, env := do(t, r, http.MethodPost, "/api/v1/checkout", session, form)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "CVV mora imati 3 cifre", env.Message)
	var verr ValidationError
	require.NoError(t, json.Unmarshal(env.Errors, &verr))
	assert.Equal(t, "cvv", verr.Field)
	assert.Equal(t, CodeCVV, verr.Code)
}

func TestController_EmptyCartAndConflict(t *testing.T) {
	gw := newGatedGateway()
	f := newFixture(t, gw)
	session := uuid.NewString()
	r := newTestEngine(f.svc)

	w, env := do(t, r, http.MethodPost, "/api/v1/checkout?lang=en", session, validForm())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Your cart is empty", env.Message)

	f.fillCart(t, session)
	w, _ = do(t, r, http.MethodPost, "/api/v1/checkout", session, validForm())
	require.Equal(t, http.StatusAccepted, w.Code)

	w, _ = do(t, r, http.MethodPost, "/api/v1/checkout", session, validForm())
	assert.Equal(t, http.StatusConflict, w.Code)

	close(gw.release)
	f.waitFor(t, session, StateSucceeded)
}

func TestController_StatusDefaultsToIdle(t *testing.T) {
	r := newTestEngine(newFixture(t, NewSimulatedGateway(0)).svc)

	w, env := do(t, r, http.MethodGet, "/api/v1/checkout/status", uuid.NewString(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var st Status
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.Equal(t, StateIdle, st.State)
	assert.Empty(t, st.Message)
}

func TestController_StatusPollingDoesNotRetainSessions(t *testing.T) {
	registry := cart.NewRegistry(time.Nanosecond)
	machines := NewMachines()
	registry.OnEvict(machines.Forget)
	svc := NewService(registry, machines, NewSimulatedGateway(0), orders.NewService(orders.NewMemoryRepository()), pricing.DefaultPolicy())
	r := newTestEngine(svc)

	for i := 0; i < 100; i++ {
		w, env := do(t, r, http.MethodGet, "/api/v1/checkout/status", uuid.NewString(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var st Status
		require.NoError(t, json.Unmarshal(env.Data, &st))
		assert.Equal(t, StateIdle, st.State)
	}
	assert.Equal(t, 0, machines.Len())

	// A submit on an empty cart creates both the cart and the machine, and
	// eviction drops them together.
	w, _ := do(t, r, http.MethodPost, "/api/v1/checkout", uuid.NewString(), validForm())
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 1, machines.Len())

	time.Sleep(time.Millisecond)
	assert.Equal(t, 1, registry.EvictIdle())
	assert.Equal(t, 0, machines.Len())
}
