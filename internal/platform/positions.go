package platform

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// SearchParams is the position list query. Zero values mean "not set" and
// are omitted from the query string (page 0 is a real value and always sent).
type SearchParams struct {
	Page            int    `json:"page"`
	Size            int    `json:"size"`
	Search          string `json:"search,omitempty"`
	Company         string `json:"company,omitempty"`
	Location        string `json:"location,omitempty"`
	ExperienceLevel string `json:"experienceLevel,omitempty"`
	JobType         string `json:"jobType,omitempty"`
	Skill           string `json:"skill,omitempty"`
	Sort            string `json:"sort,omitempty"`
}

func DefaultSearchParams() SearchParams {
	return SearchParams{Page: 0, Size: 12, Sort: "latest"}
}

// PartialParams is a sparse overlay; nil fields leave the current value
// alone. Merging a partial never resets unrelated params.
type PartialParams struct {
	Page            *int    `json:"page,omitempty"`
	Size            *int    `json:"size,omitempty"`
	Search          *string `json:"search,omitempty"`
	Company         *string `json:"company,omitempty"`
	Location        *string `json:"location,omitempty"`
	ExperienceLevel *string `json:"experienceLevel,omitempty"`
	JobType         *string `json:"jobType,omitempty"`
	Skill           *string `json:"skill,omitempty"`
	Sort            *string `json:"sort,omitempty"`
}

func (p SearchParams) Merge(partial PartialParams) SearchParams {
	out := p
	if partial.Page != nil {
		out.Page = *partial.Page
	}
	if partial.Size != nil {
		out.Size = *partial.Size
	}
	if partial.Search != nil {
		out.Search = *partial.Search
	}
	if partial.Company != nil {
		out.Company = *partial.Company
	}
	if partial.Location != nil {
		out.Location = *partial.Location
	}
	if partial.ExperienceLevel != nil {
		out.ExperienceLevel = *partial.ExperienceLevel
	}
	if partial.JobType != nil {
		out.JobType = *partial.JobType
	}
	if partial.Skill != nil {
		out.Skill = *partial.Skill
	}
	if partial.Sort != nil {
		out.Sort = *partial.Sort
	}
	return out
}

func (p SearchParams) Values() url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	if p.Size > 0 {
		q.Set("size", strconv.Itoa(p.Size))
	}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("search", p.Search)
	set("company", p.Company)
	set("location", p.Location)
	set("experienceLevel", p.ExperienceLevel)
	set("jobType", p.JobType)
	set("skill", p.Skill)
	set("sort", p.Sort)
	return q
}

type PositionsAPI struct {
	c *Client
}

func (p PositionsAPI) List(ctx context.Context, params SearchParams) (PositionsResponse, error) {
	endpoint := "/positions"
	if enc := params.Values().Encode(); enc != "" {
		endpoint += "?" + enc
	}
	var out PositionsResponse
	err := p.c.get(ctx, endpoint, &out)
	return out, err
}

func (p PositionsAPI) Detail(ctx context.Context, id int64) (PositionDetailResponse, error) {
	var out PositionDetailResponse
	err := p.c.get(ctx, fmt.Sprintf("/positions/%d", id), &out)
	return out, err
}

func (p PositionsAPI) BySlug(ctx context.Context, slug string) (PositionDetailResponse, error) {
	var out PositionDetailResponse
	err := p.c.get(ctx, "/positions/slug/"+url.PathEscape(slug), &out)
	return out, err
}

func (p PositionsAPI) FilterOptions(ctx context.Context) (FilterOptionsResponse, error) {
	var out FilterOptionsResponse
	err := p.c.get(ctx, "/positions/filter-options", &out)
	return out, err
}

func (p PositionsAPI) Popular(ctx context.Context, limit int) (PositionListResponse, error) {
	if limit <= 0 {
		limit = 6
	}
	var out PositionListResponse
	err := p.c.get(ctx, fmt.Sprintf("/positions/popular?limit=%d", limit), &out)
	return out, err
}

func (p PositionsAPI) Recent(ctx context.Context, days int) (PositionListResponse, error) {
	if days <= 0 {
		days = 7
	}
	var out PositionListResponse
	err := p.c.get(ctx, fmt.Sprintf("/positions/recent?days=%d", days), &out)
	return out, err
}

func (p PositionsAPI) DeadlineSoon(ctx context.Context, days int) (PositionListResponse, error) {
	if days <= 0 {
		days = 7
	}
	var out PositionListResponse
	err := p.c.get(ctx, fmt.Sprintf("/positions/deadline-soon?days=%d", days), &out)
	return out, err
}
