package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	m := Default()
	require.Len(t, m.Nodes, 2)
	assert.Equal(t, "dashboard", m.Nodes[0].ID)

	master, ok := m.Find("master")
	require.True(t, ok)
	assert.True(t, master.IsGroup())
	assert.Len(t, master.Children, 4)

	lokasi, ok := m.Find("lokasi")
	require.True(t, ok)
	assert.Equal(t, "/lokasi", lokasi.Path)

	_, ok = m.Find("nope")
	assert.False(t, ok)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"duplicate id", "- {id: a, label: A, path: /a}\n- {id: a, label: B, path: /b}"},
		{"leaf without path", "- {id: a, label: A}"},
		{"missing id", "- {label: A, path: /a}"},
		{"not yaml", "::::"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestIsActive(t *testing.T) {
	m := Default()
	master, _ := m.Find("master")
	unit, _ := m.Find("unit")
	dashboard, _ := m.Find("dashboard")

	assert.True(t, IsActive(unit, "/unit"))
	assert.True(t, IsActive(master, "/unit"))
	assert.True(t, IsActive(master, "/lokasi"))
	assert.False(t, IsActive(master, "/dashboard"))
	assert.True(t, IsActive(dashboard, "/dashboard"))
	assert.False(t, IsActive(dashboard, "/institusi"))
}

func TestToggle(t *testing.T) {
	in := []string{"master"}

	closed := Toggle(in, "master")
	assert.Empty(t, closed)
	assert.Equal(t, []string{"master"}, in, "input must not be modified")

	opened := Toggle(closed, "master")
	assert.Equal(t, []string{"master"}, opened)

	assert.Equal(t, []string{"master", "other"}, Toggle(in, "other"))
}

func TestBuild(t *testing.T) {
	m := Default()

	items := m.Build("/sub-unit", nil)
	require.Len(t, items, 2)
	assert.False(t, items[0].Active)
	assert.True(t, items[1].Active)
	assert.True(t, items[1].Expanded)
	require.Len(t, items[1].Items, 4)
	assert.Equal(t, 1, items[1].Items[2].Depth)
	assert.True(t, items[1].Items[2].Active)
	assert.False(t, items[1].Items[0].Active)

	items = m.Build("/dashboard", []string{})
	assert.True(t, items[0].Active)
	assert.False(t, items[1].Expanded)
}
