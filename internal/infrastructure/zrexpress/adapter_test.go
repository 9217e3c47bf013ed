package zrexpress

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a7delivery/backend/internal/domain/integration"
)

func testCreds() integration.CarrierCredentials {
	return integration.CarrierCredentials{Token: "zr-token", Key: "zr-key"}
}

func testParcel(ref, tracking string) integration.Parcel {
	return integration.Parcel{
		Tracking:   tracking,
		OrderRef:   ref,
		ExternalID: "shop-" + ref,
		Client:     "Amine B",
		Phone:      "0550123456",
		Address:    "12 Rue Didouche",
		WilayaID:   "16",
		Commune:    "Alger",
		Total:      decimal.RequireFromString("3000.00"),
		Products:   "T-shirt, Casquette",
		Note:       "",
	}
}

func TestDispatch(t *testing.T) {
	var gotBody dispatchRequest
	var gotToken, gotKey string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/add_colis", r.URL.Path)
		gotToken = r.Header.Get("token")
		gotKey = r.Header.Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"Colis":[{"Tracking":"A7DEL-1","MessageRetour":"Good"}]}`))
	}))
	t.Cleanup(server.Close)

	adapter := NewAdapter(server.URL, 5*time.Second)
	result, err := adapter.Dispatch(context.Background(), testCreds(), []integration.Parcel{
		testParcel("order-1", "A7DEL-1"),
	})
	require.NoError(t, err)

	assert.Equal(t, "zr-token", gotToken)
	assert.Equal(t, "zr-key", gotKey)

	require.Len(t, gotBody.Colis, 1)
	sent := gotBody.Colis[0]
	assert.Equal(t, "A7DEL-1", sent.Tracking)
	assert.Equal(t, "0", sent.TypeLivraison)
	assert.Equal(t, "0", sent.TypeColis)
	assert.Equal(t, "Amine B", sent.Client)
	assert.Equal(t, "0550123456", sent.MobileA)
	assert.Equal(t, "16", sent.IDWilaya)
	assert.Equal(t, "Alger", sent.Commune)
	assert.Equal(t, "300000", sent.Total)
	assert.Equal(t, "T-shirt, Casquette", sent.TProduit)
	assert.Equal(t, "shop-order-1", sent.IDExterne)
	assert.Equal(t, "A7delivery", sent.Source)

	assert.Equal(t, integration.DispatchStatusSuccess, result.Status)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, []string{"order-1"}, result.AcceptedRefs)
	assert.Empty(t, result.Failures)
}

func TestDispatchPartialFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Colis":[
			{"Tracking":"A7DEL-1","MessageRetour":"Good"},
			{"Tracking":"A7DEL-2","MessageRetour":"Commune invalide"}
		]}`))
	}))
	t.Cleanup(server.Close)

	adapter := NewAdapter(server.URL, 5*time.Second)
	result, err := adapter.Dispatch(context.Background(), testCreds(), []integration.Parcel{
		testParcel("order-1", "A7DEL-1"),
		testParcel("order-2", "A7DEL-2"),
	})
	require.NoError(t, err)

	assert.Equal(t, integration.DispatchStatusPartial, result.Status)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.FailedCount)
	assert.Equal(t, []string{"order-1"}, result.AcceptedRefs)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "order-2", result.Failures[0].OrderRef)
	assert.Equal(t, "Commune invalide", result.Failures[0].Message)
}

func TestDispatchEmptyEchoAcceptsAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	adapter := NewAdapter(server.URL, 5*time.Second)
	result, err := adapter.Dispatch(context.Background(), testCreds(), []integration.Parcel{
		testParcel("order-1", "A7DEL-1"),
	})
	require.NoError(t, err)

	assert.Equal(t, integration.DispatchStatusSuccess, result.Status)
	assert.Equal(t, []string{"order-1"}, result.AcceptedRefs)
}

func TestDispatchNotConfigured(t *testing.T) {
	adapter := NewAdapter("", time.Second)

	_, err := adapter.Dispatch(context.Background(), integration.CarrierCredentials{}, nil)
	assert.ErrorIs(t, err, integration.ErrPlatformNotConfigured)
}

func TestDispatchAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	adapter := NewAdapter(server.URL, time.Second)
	_, err := adapter.Dispatch(context.Background(), testCreds(), []integration.Parcel{
		testParcel("order-1", "A7DEL-1"),
	})
	assert.ErrorIs(t, err, integration.ErrPlatformAuthFailed)
}

func TestDispatchMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	t.Cleanup(server.Close)

	adapter := NewAdapter(server.URL, time.Second)
	_, err := adapter.Dispatch(context.Background(), testCreds(), []integration.Parcel{
		testParcel("order-1", "A7DEL-1"),
	})
	assert.ErrorIs(t, err, integration.ErrPlatformInvalidResponse)
}

func TestTestConnection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/token", r.URL.Path)
		assert.Equal(t, "zr-token", r.Header.Get("token"))
		w.Write([]byte(`{"Statut":"Accès activé"}`))
	}))
	t.Cleanup(server.Close)

	adapter := NewAdapter(server.URL, time.Second)
	status := adapter.TestConnection(context.Background(), testCreds())
	assert.True(t, status.OK)
}

func TestTestConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(server.Close)

	adapter := NewAdapter(server.URL, time.Second)
	status := adapter.TestConnection(context.Background(), testCreds())
	assert.False(t, status.OK)
	assert.NotEmpty(t, status.Detail)
}

func TestTestConnectionNotConfigured(t *testing.T) {
	adapter := NewAdapter("", time.Second)

	status := adapter.TestConnection(context.Background(), integration.CarrierCredentials{Token: "only"})
	assert.False(t, status.OK)
}
