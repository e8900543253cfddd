package httpapi

import (
	"context"

	"github.com/trezcool/darasa/core/catalog"
)

var _ catalog.Gateway = (*Client)(nil) // interface compliance check

func (c *Client) FetchHierarchy(ctx context.Context, batchID string) (catalog.Hierarchy, error) {
	var res struct {
		Courses []catalog.Course `json:"courses"`
	}
	err := c.get(ctx, "/course-catalog/batch/"+batchID, nil, &res)
	if err == errNotFound {
		return catalog.Hierarchy{}, catalog.ErrNotFound
	}
	if err != nil {
		return catalog.Hierarchy{}, err
	}
	return catalog.Hierarchy{BatchID: batchID, Courses: res.Courses}, nil
}
