package platform

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ResolveLoginRedirect works out where the OAuth authorization endpoint
// actually sends the browser. The happy path is a 302 Location header; some
// deployments answer 200 with an interstitial HTML page instead, in which
// case the provider link is dug out of the markup.
func (a AuthAPI) ResolveLoginRedirect(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.LoginURL(), nil)
	if err != nil {
		return "", fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("User-Agent", "GameCraftEngine/1.0 (+local)")

	// Same jar, but don't follow the redirect; the target is the answer.
	hc := &http.Client{
		Timeout: a.c.hc.Timeout,
		Jar:     a.c.hc.Jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	res, err := hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch login page: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 && res.StatusCode < 400 {
		loc := res.Header.Get("Location")
		if loc == "" {
			return "", errors.New("login redirect without Location header")
		}
		return loc, nil
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login page status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return "", fmt.Errorf("parse login page html: %w", err)
	}

	// meta refresh first
	if content, ok := doc.Find(`meta[http-equiv="refresh"]`).Attr("content"); ok {
		if i := strings.Index(strings.ToLower(content), "url="); i >= 0 {
			if u := strings.TrimSpace(content[i+4:]); u != "" {
				return u, nil
			}
		}
	}

	// else any anchor pointing at the provider
	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if strings.Contains(href, "kauth.kakao.com") || strings.Contains(href, "/oauth/authorize") {
			found = href
			return false
		}
		return true
	})
	if found == "" {
		return "", errors.New("no provider redirect found on login page")
	}
	return found, nil
}
