package processor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/crudkit/paginate"
	"github.com/dmitrymomot/crudkit/processor"
)

func TestResult(t *testing.T) {
	t.Parallel()

	t.Run("object variant", func(t *testing.T) {
		t.Parallel()
		res := processor.Object(widget{ID: "w1"})
		assert.Equal(t, processor.KindObject, res.Kind())
		assert.False(t, res.Paginated())
		assert.Equal(t, "w1", res.Object().ID)
	})

	t.Run("collection variant", func(t *testing.T) {
		t.Parallel()
		res := processor.Collection([]widget{{ID: "w1"}, {ID: "w2"}})
		assert.Equal(t, processor.KindCollection, res.Kind())
		assert.False(t, res.Paginated())
		assert.Len(t, res.Items(), 2)
	})

	t.Run("nil collection normalizes to empty slice", func(t *testing.T) {
		t.Parallel()
		res := processor.Collection[widget](nil)
		assert.NotNil(t, res.Items())
		assert.Empty(t, res.Items())
	})

	t.Run("page variant", func(t *testing.T) {
		t.Parallel()
		res := processor.Paged(paginate.Page[widget]{
			Items: []widget{{ID: "w1"}},
			Total: 9,
			Limit: 1,
		})
		assert.Equal(t, processor.KindPage, res.Kind())
		assert.True(t, res.Paginated())
		assert.Equal(t, 9, res.Page().Total)
	})

	t.Run("page with nil items normalizes", func(t *testing.T) {
		t.Parallel()
		res := processor.Paged(paginate.Page[widget]{Total: 0, Limit: 20})
		assert.NotNil(t, res.Page().Items)
	})
}
