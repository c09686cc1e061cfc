package platform

import (
	"context"
	"net/http"
)

type AuthAPI struct {
	c *Client
}

// LoginURL is where the browser shell navigates to start the Kakao OAuth
// dance. It returns HTML, not JSON; see ResolveLoginRedirect.
func (a AuthAPI) LoginURL() string {
	return a.c.baseURL + "/oauth2/authorization/kakao"
}

func (a AuthAPI) UserInfo(ctx context.Context) (UserInfoResponse, error) {
	var out UserInfoResponse
	err := a.c.get(ctx, "/auth/kakao/user-info", &out)
	return out, err
}

func (a AuthAPI) Logout(ctx context.Context) (Envelope, error) {
	var out Envelope
	err := a.c.do(ctx, http.MethodPost, "/auth/kakao/logout", nil, &out)
	return out, err
}
