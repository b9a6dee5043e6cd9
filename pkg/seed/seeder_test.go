package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/belliavesha/Rxivist/pkg/domain"
)

// fakeLookup resolves identifiers from a canned map; unknown
// identifiers miss, "boom" fails
type fakeLookup struct {
	papers map[string]domain.Paper
}

func (f *fakeLookup) LookupByID(_ context.Context, id string) (*domain.Paper, error) {
	if id == "boom" {
		return nil, errors.New("network down")
	}
	p, ok := f.papers[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func TestBuild(t *testing.T) {
	lookup := &fakeLookup{papers: map[string]domain.Paper{
		"1": {Title: "Virus spread models", Authors: []string{"Jane Q. Smith"}},
		"2": {Title: "Virus containment", Authors: []string{"Jane Smith", "Bob Jones"}},
		"3": {Title: "Quantum virus computing", Authors: []string{"Bob Jones"}},
	}}

	store, err := Build(context.Background(), lookup, []string{"1", "2", "3", "missing", "boom"}, 2)
	require.NoError(t, err)

	// "virus" appears in all three titles and wins; the rest tie at one
	// occurrence, first seen goes second
	require.Len(t, store.Keywords, 2)
	assert.Equal(t, "virus", store.Keywords[0].Keyword)
	assert.Equal(t, 3, store.Keywords[0].Weight)
	assert.Equal(t, "spread", store.Keywords[1].Keyword)
	assert.Equal(t, 1, store.Keywords[1].Weight)

	// both Jane Smiths collapse to the same canonical key
	require.Len(t, store.Authors, 2)
	assert.Equal(t, "j smith", store.Authors[0].Author)
	assert.Equal(t, 2, store.Authors[0].Weight)
	assert.Equal(t, "b jones", store.Authors[1].Author)
	assert.Equal(t, 2, store.Authors[1].Weight)
}

func TestBuild_NoResolvableEntries(t *testing.T) {
	lookup := &fakeLookup{}
	store, err := Build(context.Background(), lookup, []string{"missing", "boom"}, 10)
	require.NoError(t, err)
	assert.Empty(t, store.Keywords)
	assert.Empty(t, store.Authors)
}

func TestBuild_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Build(ctx, &fakeLookup{}, []string{"1"}, 10)
	require.ErrorIs(t, err, context.Canceled)
}

func TestBuild_TopNCut(t *testing.T) {
	lookup := &fakeLookup{papers: map[string]domain.Paper{
		"1": {Title: "alpha beta gamma delta", Authors: []string{"A One", "B Two", "C Three"}},
	}}

	store, err := Build(context.Background(), lookup, []string{"1"}, 2)
	require.NoError(t, err)

	// all tie at one occurrence, the cut keeps first-seen order
	require.Len(t, store.Keywords, 2)
	assert.Equal(t, "alpha", store.Keywords[0].Keyword)
	assert.Equal(t, "beta", store.Keywords[1].Keyword)
	require.Len(t, store.Authors, 2)
	assert.Equal(t, "a one", store.Authors[0].Author)
	assert.Equal(t, "b two", store.Authors[1].Author)
}
