package directory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodmap/foodmap/internal/directory"
	"github.com/foodmap/foodmap/internal/localstore"
	"github.com/foodmap/foodmap/pkg/places"
)

type stubLister struct {
	items []places.Place
	calls int
}

func (s *stubLister) List(ctx context.Context) []places.Place {
	s.calls++
	return places.Clone(s.items)
}

func sample(id, name string) places.Place {
	return places.Place{ID: id, Name: name, City: "成都", Category: "小吃", Lng: places.Float64(104), Lat: places.Float64(30.6)}
}

func newDirectory(t *testing.T, remote directory.Lister, opts ...directory.Option) (*directory.Directory, *localstore.Store) {
	t.Helper()
	local := localstore.New(t.TempDir())
	return directory.New(local, remote, opts...), local
}

func TestLoadAdoptsRemote(t *testing.T) {
	remote := &stubLister{items: []places.Place{sample("a", "红油抄手"), sample("b", "钵钵鸡")}}
	d, local := newDirectory(t, remote)

	items, provenance := d.Load(context.Background(), directory.LoadOptions{PreferLocal: true})
	assert.Equal(t, localstore.ProvenanceSupabase, provenance)
	assert.Len(t, items, 2)

	snap := local.Load()
	require.NotNil(t, snap)
	assert.Equal(t, localstore.ProvenanceSupabase, snap.Mode)
	assert.Len(t, snap.Items, 2)
}

func TestLoadFallsBackWhenRemoteUnavailable(t *testing.T) {
	fallback := []places.Place{sample("f1", "豆花"), sample("f2", "凉糕"), sample("f3", "冰粉")}
	d, local := newDirectory(t, &stubLister{items: nil},
		directory.WithFallback(func() []places.Place { return places.Clone(fallback) }))

	items, provenance := d.Load(context.Background(), directory.LoadOptions{PreferLocal: true})
	assert.Equal(t, localstore.ProvenanceFallback, provenance)
	assert.Len(t, items, 3)

	snap := local.Load()
	require.NotNil(t, snap)
	assert.Equal(t, localstore.ProvenanceFallback, snap.Mode)
}

func TestLoadPrefersLocalSnapshot(t *testing.T) {
	remote := &stubLister{items: []places.Place{sample("r", "remote")}}
	d, local := newDirectory(t, remote)
	require.NoError(t, local.Save([]places.Place{sample("l", "local")}, localstore.ProvenanceEdited))

	items, provenance := d.Load(context.Background(), directory.LoadOptions{PreferLocal: true})
	assert.Equal(t, localstore.ProvenanceEdited, provenance)
	require.Len(t, items, 1)
	assert.Equal(t, "l", items[0].ID)
	assert.Zero(t, remote.calls)
}

func TestLoadEmptyLocalFallsThroughToRemote(t *testing.T) {
	remote := &stubLister{items: []places.Place{sample("r", "remote")}}
	d, local := newDirectory(t, remote)
	require.NoError(t, local.Save([]places.Place{}, localstore.ProvenanceEdited))

	items, provenance := d.Load(context.Background(), directory.LoadOptions{PreferLocal: true})
	assert.Equal(t, localstore.ProvenanceSupabase, provenance)
	require.Len(t, items, 1)
	assert.Equal(t, 1, remote.calls)
}

func TestLoadForceRemoteSkipsLocal(t *testing.T) {
	remote := &stubLister{items: []places.Place{sample("r", "remote")}}
	d, local := newDirectory(t, remote)
	require.NoError(t, local.Save([]places.Place{sample("l", "local")}, localstore.ProvenanceEdited))

	items, provenance := d.Load(context.Background(), directory.LoadOptions{PreferLocal: true, ForceRemote: true})
	assert.Equal(t, localstore.ProvenanceSupabase, provenance)
	require.Len(t, items, 1)
	assert.Equal(t, "r", items[0].ID)
}

func TestApplyCreatePrependsAndPersistsEdited(t *testing.T) {
	remote := &stubLister{items: []places.Place{sample("a", "老店")}}
	d, local := newDirectory(t, remote)
	d.Load(context.Background(), directory.LoadOptions{})

	require.NoError(t, d.ApplyCreate(sample("b", "新店")))

	items := d.Places()
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].ID)

	snap := local.Load()
	require.NotNil(t, snap)
	assert.Equal(t, localstore.ProvenanceEdited, snap.Mode)
	assert.Len(t, snap.Items, 2)
	assert.Equal(t, localstore.ProvenanceEdited, d.Provenance())
}

func TestApplyUpdateReplacesByID(t *testing.T) {
	remote := &stubLister{items: []places.Place{sample("a", "原名"), sample("b", "另一家")}}
	d, local := newDirectory(t, remote)
	d.Load(context.Background(), directory.LoadOptions{})

	updated := sample("a", "新名")
	require.NoError(t, d.ApplyUpdate(updated))

	got, ok := d.Find("a")
	require.True(t, ok)
	assert.Equal(t, "新名", got.Name)

	snap := local.Load()
	require.NotNil(t, snap)
	assert.Equal(t, localstore.ProvenanceEdited, snap.Mode)
}

func TestApplyRemoveDeletesByID(t *testing.T) {
	remote := &stubLister{items: []places.Place{sample("a", "甲"), sample("b", "乙")}}
	d, local := newDirectory(t, remote)
	d.Load(context.Background(), directory.LoadOptions{})

	require.NoError(t, d.ApplyRemove("a"))

	items := d.Places()
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ID)

	_, ok := d.Find("a")
	assert.False(t, ok)

	snap := local.Load()
	require.NotNil(t, snap)
	assert.Len(t, snap.Items, 1)
}

func TestPlacesReturnsCopies(t *testing.T) {
	remote := &stubLister{items: []places.Place{sample("a", "甲")}}
	d, _ := newDirectory(t, remote)
	d.Load(context.Background(), directory.LoadOptions{})

	items := d.Places()
	items[0].Name = "mutated"

	got, ok := d.Find("a")
	require.True(t, ok)
	assert.Equal(t, "甲", got.Name)
}

func TestFilterReadsCurrentList(t *testing.T) {
	a := sample("a", "甲")
	b := sample("b", "乙")
	b.City = "重庆"
	remote := &stubLister{items: []places.Place{a, b}}
	d, _ := newDirectory(t, remote)
	d.Load(context.Background(), directory.LoadOptions{})

	got := d.Filter(places.Selection{City: "重庆"})
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestBusyGaugeFloorsAtZero(t *testing.T) {
	var seen []int
	d, _ := newDirectory(t, &stubLister{}, directory.WithBusyCallback(func(n int) {
		seen = append(seen, n)
	}))

	d.IncBusy()
	d.IncBusy()
	d.DecBusy()
	d.DecBusy()
	d.DecBusy()

	assert.Equal(t, 0, d.Busy())
	assert.Equal(t, []int{1, 2, 1, 0, 0}, seen)
}
