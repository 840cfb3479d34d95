package persistence

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memItems struct {
	items   map[string][]byte
	loadErr error
	saveErr error
}

func (m *memItems) LoadItem(name string) ([]byte, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.items[name], nil
}

func (m *memItems) SaveItem(name string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.items == nil {
		m.items = map[string][]byte{}
	}
	m.items[name] = data
	return nil
}

func TestStoreRoundTrip(t *testing.T) {
	items := &memItems{}
	s := newStore(items, nil)

	saved, err := s.LoadGravity()
	require.NoError(t, err)
	assert.Nil(t, saved, "nothing saved yet")

	want := SavedGravity{Preset: "down", Composition: "additive"}
	require.NoError(t, s.SaveGravity(want))
	assert.JSONEq(t, `{"preset":"down","composition":"additive"}`, string(items.items[gravityItem]))

	got, err := s.LoadGravity()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)

	require.NoError(t, s.Clear())
	got, err = s.LoadGravity()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStoreErrors(t *testing.T) {
	boom := errors.New("disk full")

	_, err := newStore(&memItems{loadErr: boom}, nil).LoadGravity()
	assert.ErrorIs(t, err, boom)

	err = newStore(&memItems{saveErr: boom}, nil).SaveGravity(SavedGravity{})
	assert.ErrorIs(t, err, boom)

	corrupt := &memItems{items: map[string][]byte{gravityItem: []byte("{")}}
	_, err = newStore(corrupt, nil).LoadGravity()
	assert.Error(t, err)
}

func TestNilStoreIsNoop(t *testing.T) {
	var s *Store
	got, err := s.LoadGravity()
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, s.SaveGravity(SavedGravity{Preset: "up"}))
	assert.NoError(t, s.Clear())
}
