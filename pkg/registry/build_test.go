package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_RunsSetupsInOrder(t *testing.T) {
	var order []string
	first := func(r Registrar) error {
		order = append(order, "first")
		return r.RegisterKindHandler([]int{1}, "First", 10, CategoryFullCard)
	}
	second := func(r Registrar) error {
		order = append(order, "second")
		return r.RegisterKindHandler([]int{1}, "Second", 10, CategoryFullCard)
	}

	r, err := Build(first, second)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)

	h, ok := r.ResolveKind(1, CategoryFullCard)
	require.True(t, ok)
	assert.Equal(t, "Second", h, "later setup wins equal-priority ties")
}

func TestBuild_StopsAtFirstFailure(t *testing.T) {
	ran := false
	bad := func(r Registrar) error {
		return r.RegisterKindHandler(nil, "Broken", 1, CategoryFullCard)
	}
	never := func(r Registrar) error {
		ran = true
		return nil
	}

	r, err := Build(bad, never)
	assert.Nil(t, r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "setup 0 failed")
	assert.True(t, errors.Is(err, ErrInvalidRegistration))
	assert.False(t, ran)
}

func TestBuild_NilSetup(t *testing.T) {
	_, err := Build(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "setup 0 is nil")
}

func TestCategoryValidate(t *testing.T) {
	for _, c := range AllCategories() {
		assert.NoError(t, c.Validate())
	}
	assert.Len(t, AllCategories(), 7)

	err := Category("sidebar").Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown category: "sidebar"`)
}
