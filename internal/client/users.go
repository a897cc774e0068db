package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/models/dto"
)

func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var out dto.DataResponse[[]models.User]
	if err := c.do(ctx, call{method: http.MethodGet, path: "/api/v1/users", out: &out}); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: "/api/v1/users/" + url.PathEscape(id)})
}

func (c *Client) Promote(ctx context.Context, id string) (models.User, error) {
	return c.setRole(ctx, id, "promote")
}

func (c *Client) Demote(ctx context.Context, id string) (models.User, error) {
	return c.setRole(ctx, id, "demote")
}

func (c *Client) setRole(ctx context.Context, id, action string) (models.User, error) {
	var out dto.DataResponse[models.User]
	path := "/api/v1/users/" + url.PathEscape(id) + "/" + action
	if err := c.do(ctx, call{method: http.MethodPut, path: path, out: &out}); err != nil {
		return models.User{}, err
	}
	return out.Data, nil
}
