package tasks

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrymomot/crudkit/binder"
	"github.com/dmitrymomot/crudkit/processor"
)

type createTask struct {
	processor.Base[Task]
	store Store
}

func (c *createTask) Execute(ctx context.Context) (Task, error) {
	t := NewTask("", "")
	applyPayload(&t, c.Request.Payload)
	if err := c.store.Insert(ctx, t); err != nil {
		return Task{}, err
	}
	return t, nil
}

type updateTask struct {
	processor.Base[Task]
	store Store
}

func (c *updateTask) Execute(ctx context.Context) (Task, error) {
	t, err := c.GetObject(ctx, StoreSource(c.store))
	if err != nil {
		return Task{}, err
	}

	// Full updates replace the resource: optional fields not present in the
	// payload revert to their defaults. Partial updates touch only what the
	// payload carries.
	if !c.Request.Partial {
		t.Notes = ""
		t.Status = StatusPending
	}
	applyPayload(&t, c.Request.Payload)
	t.UpdatedAt = time.Now().UTC()

	if err := c.store.Update(ctx, t); err != nil {
		return Task{}, err
	}
	return t, nil
}

type deleteTask struct {
	processor.Base[Task]
	store Store
}

func (c *deleteTask) Execute(ctx context.Context) (Task, error) {
	t, err := c.GetObject(ctx, StoreSource(c.store))
	if err != nil {
		return Task{}, err
	}
	if err := c.store.Delete(ctx, t.ID); err != nil {
		return Task{}, err
	}
	return t, nil
}

type getTask struct {
	processor.Base[Task]
	store Store
}

func (q *getTask) Execute(ctx context.Context) (processor.Result[Task], error) {
	t, err := q.GetObject(ctx, StoreSource(q.store))
	if err != nil {
		return processor.Result[Task]{}, err
	}
	return processor.Object(t), nil
}

type listTasks struct {
	processor.Base[Task]
	store Store
}

func (q *listTasks) Execute(ctx context.Context) (processor.Result[Task], error) {
	items, err := q.store.List(ctx)
	if err != nil {
		return processor.Result[Task]{}, err
	}
	return q.FilterAndPaginate(ctx, items)
}

// listFilter is bound from the query string of list requests.
type listFilter struct {
	Status string `query:"status"`
	Search string `query:"q"`
}

// queryFilter narrows list results by status and a case-insensitive title
// substring match.
type queryFilter struct{}

func (queryFilter) Filter(_ context.Context, req processor.Request, items []Task) ([]Task, error) {
	var f listFilter
	if err := binder.Values(&f, "query", req.QueryParams, binder.ErrInvalidQuery); err != nil {
		return nil, err
	}
	if f.Status == "" && f.Search == "" {
		return items, nil
	}

	needle := strings.ToLower(f.Search)
	out := make([]Task, 0, len(items))
	for _, t := range items {
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(t.Title), needle) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

var _ processor.Filterer[Task] = queryFilter{}
