package asaas

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

// FindCustomerByEmail returns the first provider customer whose email matches
// exactly, or nil when none exists.
func (c *Client) FindCustomerByEmail(ctx context.Context, email string) (*Customer, string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, "", errors.New("asaas: email is required")
	}

	query := url.Values{}
	query.Set("email", email)

	var list customerListResponse
	environment, err := c.do(ctx, http.MethodGet, "/customers", query, nil, &list)
	if err != nil {
		return nil, environment, err
	}
	if len(list.Data) == 0 {
		return nil, environment, nil
	}
	return &list.Data[0], environment, nil
}

// CreateCustomer registers a new customer with the provider.
func (c *Client) CreateCustomer(ctx context.Context, in *Customer) (*Customer, string, error) {
	if in == nil || strings.TrimSpace(in.Email) == "" {
		return nil, "", errors.New("asaas: customer email is required")
	}

	var created Customer
	environment, err := c.do(ctx, http.MethodPost, "/customers", nil, in, &created)
	if err != nil {
		return nil, environment, err
	}
	if strings.TrimSpace(created.ID) == "" {
		return nil, environment, errors.New("asaas: customer create returned empty id")
	}
	return &created, environment, nil
}

// ResolveCustomer returns the provider id for the customer's email, creating
// the customer when no match exists.
//
// Lookup and create are not atomic: two concurrent checkouts for the same
// email can both miss the lookup and create duplicate customers. The
// provider tolerates duplicates, so no lock is held here.
func (c *Client) ResolveCustomer(ctx context.Context, in *Customer) (string, string, error) {
	existing, environment, err := c.FindCustomerByEmail(ctx, in.Email)
	if err != nil {
		return "", environment, err
	}
	if existing != nil {
		return existing.ID, environment, nil
	}

	created, environment, err := c.CreateCustomer(ctx, in)
	if err != nil {
		return "", environment, err
	}
	return created.ID, environment, nil
}
