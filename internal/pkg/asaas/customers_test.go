package asaas

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCustomerReturnsExistingMatch(t *testing.T) {
	createCalls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/customers":
			require.Equal(t, "maria@example.com", r.URL.Query().Get("email"))
			_, _ = w.Write([]byte(`{"data":[{"id":"cus_42","email":"maria@example.com"}],"totalCount":1}`))
		case r.Method == http.MethodPost && r.URL.Path == "/customers":
			createCalls++
			_, _ = w.Write([]byte(`{"id":"cus_new"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := newTestClient(Environment{Name: "production", BaseURL: server.URL})

	id, environment, err := client.ResolveCustomer(context.Background(), &Customer{Email: "maria@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "cus_42", id)
	assert.Equal(t, "production", environment)
	assert.Zero(t, createCalls, "an existing customer must not be re-created")
}

func TestResolveCustomerCreatesWhenAbsent(t *testing.T) {
	var created Customer
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/customers":
			_, _ = w.Write([]byte(`{"data":[],"totalCount":0}`))
		case r.Method == http.MethodPost && r.URL.Path == "/customers":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
			_, _ = w.Write([]byte(`{"id":"cus_new"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := newTestClient(Environment{Name: "production", BaseURL: server.URL})

	id, _, err := client.ResolveCustomer(context.Background(), &Customer{
		Name:    "Maria Silva",
		Email:   "maria@example.com",
		CpfCnpj: "12345678901",
	})
	require.NoError(t, err)
	assert.Equal(t, "cus_new", id)
	assert.Equal(t, "Maria Silva", created.Name)
	assert.Equal(t, "12345678901", created.CpfCnpj)
}

func TestResolveCustomerIsIdempotentAfterFirstCreate(t *testing.T) {
	createCalls := 0
	var existing []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/customers":
			if existing == nil {
				_, _ = w.Write([]byte(`{"data":[],"totalCount":0}`))
				return
			}
			_, _ = w.Write(existing)
		case r.Method == http.MethodPost && r.URL.Path == "/customers":
			createCalls++
			existing = []byte(`{"data":[{"id":"cus_77"}],"totalCount":1}`)
			_, _ = w.Write([]byte(`{"id":"cus_77"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := newTestClient(Environment{Name: "production", BaseURL: server.URL})
	in := &Customer{Email: "joao@example.com", Name: "Joao"}

	first, _, err := client.ResolveCustomer(context.Background(), in)
	require.NoError(t, err)
	second, _, err := client.ResolveCustomer(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, createCalls)
}
