package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanAdrianRavikumar/disaster-routing-system/graph"
	"github.com/RyanAdrianRavikumar/disaster-routing-system/shelter"
)

const sampleYAML = `
nodes:
  - { id: A, name: City Hall, latitude: 6.92, longitude: 79.86 }
  - { id: B, name: Market, latitude: 6.93, longitude: 79.85 }
edges:
  - { id: AB, from: A, to: B, weight: 5, bidirectional: true }
shelters:
  - { shelterId: S1, name: School, capacity: 10, latitude: 6.93, longitude: 79.85 }
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))
	return path
}

func TestLoadAndApply(t *testing.T) {
	ds, err := LoadFile(writeSample(t))
	require.NoError(t, err)

	g := graph.NewStore()
	reg := shelter.NewRegistry()
	require.NoError(t, ds.Apply(g, reg))

	assert.Len(t, g.Nodes(), 2)
	// Bidirectional roads become two directed edges.
	assert.Len(t, g.Edges(), 2)

	shelters := reg.List()
	require.Len(t, shelters, 1)
	assert.Equal(t, "S1", shelters[0].ID)
	assert.Equal(t, 10, shelters[0].Capacity)
}

func TestApplyTwiceFails(t *testing.T) {
	ds, err := LoadFile(writeSample(t))
	require.NoError(t, err)

	g := graph.NewStore()
	reg := shelter.NewRegistry()
	require.NoError(t, ds.Apply(g, reg))
	assert.Error(t, ds.Apply(g, reg))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
