package httpapi

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salcedoinaki/fcsim/internal/plant"
	"github.com/salcedoinaki/fcsim/internal/sim"
)

func TestSnapshotEndpoint(t *testing.T) {
	holder := &SnapshotHolder{}
	srv := NewServer(":0", holder, zerolog.Nop())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/snapshot")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 503, resp.StatusCode, "no snapshot recorded yet")

	holder.OnStep(sim.Snapshot{
		Step:     7,
		Time:     3.5,
		FuelCell: plant.FuelCellState{Voltage: 51.2, Temperature: 31.0},
	})

	resp, err = ts.Client().Get(ts.URL + "/snapshot")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	var snap sim.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, 7, snap.Step)
	assert.InDelta(t, 51.2, snap.FuelCell.Voltage, 1e-9)
}

func TestSnapshotMethodNotAllowed(t *testing.T) {
	holder := &SnapshotHolder{}
	srv := NewServer(":0", holder, zerolog.Nop())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := ts.Client().Post(ts.URL+"/snapshot", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 405, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	srv := NewServer(":0", &SnapshotHolder{}, zerolog.Nop())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)
}
