package platform

import (
	"context"
	"fmt"
	"net/url"
)

type AdminAPI struct {
	c *Client
}

func (a AdminAPI) PromoteToAdmin(ctx context.Context) (Envelope, error) {
	var out Envelope
	err := a.c.post(ctx, "/admin/promote-to-admin", nil, &out)
	return out, err
}

func (a AdminAPI) Dashboard(ctx context.Context) (AdminDashboardResponse, error) {
	var out AdminDashboardResponse
	err := a.c.get(ctx, "/admin/dashboard", &out)
	return out, err
}

// Applications lists every application, optionally narrowed by status and/or
// company. The backend sends the full filtered set; no pagination params
// exist on this path.
func (a AdminAPI) Applications(ctx context.Context, status, company string) (AdminApplicationListResponse, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if company != "" {
		q.Set("company", company)
	}
	endpoint := "/admin/applications"
	if enc := q.Encode(); enc != "" {
		endpoint += "?" + enc
	}

	var out AdminApplicationListResponse
	err := a.c.get(ctx, endpoint, &out)
	return out, err
}

func (a AdminAPI) ApplicationDetail(ctx context.Context, id int64) (AdminApplicationDetailResponse, error) {
	var out AdminApplicationDetailResponse
	err := a.c.get(ctx, fmt.Sprintf("/admin/applications/%d", id), &out)
	return out, err
}

type UpdateStatusRequest struct {
	Status     string `json:"status"`
	AdminNotes string `json:"adminNotes,omitempty"`
}

func (a AdminAPI) UpdateApplicationStatus(ctx context.Context, id int64, status, adminNotes string) (Envelope, error) {
	var out Envelope
	err := a.c.put(ctx, fmt.Sprintf("/admin/applications/%d/status", id), UpdateStatusRequest{
		Status:     status,
		AdminNotes: adminNotes,
	}, &out)
	return out, err
}
