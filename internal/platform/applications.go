package platform

import (
	"context"

	"gamecraft-engine/internal/domain"
)

type ApplicationsAPI struct {
	c *Client
}

func (a ApplicationsAPI) FormInfo(ctx context.Context) (FormInfoResponse, error) {
	var out FormInfoResponse
	err := a.c.get(ctx, "/application/form-info", &out)
	return out, err
}

// Create submits an application. Validation happens server-side; a rejected
// payload comes back as a soft failure, not an error.
func (a ApplicationsAPI) Create(ctx context.Context, req domain.CreateApplicationRequest) (CreateApplicationResponse, error) {
	var out CreateApplicationResponse
	err := a.c.post(ctx, "/application/create", req, &out)
	return out, err
}

func (a ApplicationsAPI) MyList(ctx context.Context) (ApplicationListResponse, error) {
	var out ApplicationListResponse
	err := a.c.get(ctx, "/application/my-list", &out)
	return out, err
}
