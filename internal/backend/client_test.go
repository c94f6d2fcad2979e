package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurum-jewels/admin-console/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewClient(srv.URL+"/api", 2*time.Second, logger)
}

func TestListProductsSendsBearerToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Write([]byte(`[{"_id":"p1","name":"Solitaire Ring","price":1200,"category":"Ring","countInStock":3},
			{"_id":"p2","name":"Gift Bangle","price":800,"category":["Bangle","Gift"]}]`))
	})

	products, err := client.ListProducts(context.Background(), Session{Token: "tok-123"})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, models.Categories{"Ring"}, products[0].Category)
	assert.Equal(t, models.Categories{"Bangle", "Gift"}, products[1].Category)
}

func TestNoTokenNoAuthorizationHeader(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	})

	_, err := client.ListUsers(context.Background(), Session{})
	require.NoError(t, err)
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{"not found", http.StatusNotFound, `{"message":"Order not found"}`, func(t *testing.T, err error) {
			var nf *NotFoundError
			require.True(t, errors.As(err, &nf))
			assert.Equal(t, "order", nf.Resource)
			assert.Equal(t, "o-404", nf.ID)
		}},
		{"validation", http.StatusBadRequest, `{"message":"Price is required"}`, func(t *testing.T, err error) {
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, "Price is required", ve.Message)
		}},
		{"auth", http.StatusUnauthorized, `{"message":"Not authorized, token failed"}`, func(t *testing.T, err error) {
			var ae *AuthError
			require.True(t, errors.As(err, &ae))
			assert.Equal(t, http.StatusUnauthorized, ae.StatusCode)
		}},
		{"server error", http.StatusInternalServerError, `oops`, func(t *testing.T, err error) {
			var fe *FetchError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, http.StatusInternalServerError, fe.StatusCode)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})
			_, err := client.GetOrder(context.Background(), Session{Token: "t"}, "o-404")
			require.Error(t, err)
			tc.check(t, err)
		})
	}
}

func TestTransportFailureIsFetchError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1/api", time.Second, nil)
	_, err := client.ListOrders(context.Background(), Session{})
	require.Error(t, err)
	assert.True(t, IsFetch(err))
}

func TestMalformedBodyIsFetchError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"a list"}`))
	})
	_, err := client.ListOrders(context.Background(), Session{})
	assert.True(t, IsFetch(err))
}

func TestUpdateOrderStatusBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/orders/o1/status", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Shipped", body["orderStatus"])

		w.Write([]byte(`{"_id":"o1","orderStatus":"Shipped"}`))
	})

	order, err := client.UpdateOrderStatus(context.Background(), Session{Token: "t"}, "o1", models.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, order.OrderStatus)
}

func TestListOrdersByUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/user/u7", r.URL.Path)
		w.Write([]byte(`[{"_id":"o1","user":"u7","totalPrice":10}]`))
	})

	orders, err := client.ListOrdersByUser(context.Background(), Session{}, "u7")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "u7", orders[0].User.ID)
}

func TestLogin(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"_id":"u1","name":"Meera","email":"meera@store.in","isAdmin":true,"token":"backend-jwt"}`))
	})

	result, err := client.Login(context.Background(), LoginInput{Email: "meera@store.in", Password: "pw"})
	require.NoError(t, err)
	assert.True(t, result.Admin())
	assert.Equal(t, "backend-jwt", result.Token)
	assert.Equal(t, "u1", result.ID)
}

func TestUploadImage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/upload", r.URL.Path)
		assert.Equal(t, "Bearer t", r.Header.Get("Authorization"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "ring.png", header.Filename)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))
		assert.Equal(t, "PNGDATA", string(data))

		w.Write([]byte(`{"url":"/uploads/ring.png"}`))
	})

	url, err := client.UploadImage(context.Background(), Session{Token: "t"}, "ring.png", "image/png", strings.NewReader("PNGDATA"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/ring.png", url)
}

func TestSplitResource(t *testing.T) {
	r, id := splitResource("/categories/c1")
	assert.Equal(t, "category", r)
	assert.Equal(t, "c1", id)

	r, id = splitResource("/orders/user/u1")
	assert.Equal(t, "user", r)
	assert.Equal(t, "u1", id)

	r, id = splitResource("/products")
	assert.Equal(t, "product", r)
	assert.Equal(t, "", id)
}
