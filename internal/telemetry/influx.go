package telemetry

import (
	"context"
	"net/http"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rs/zerolog"

	"github.com/salcedoinaki/fcsim/internal/sim"
)

// InfluxConfig identifies the InfluxDB endpoint snapshots are written to.
type InfluxConfig struct {
	URL    string
	Token  string
	Org    string
	Bucket string
}

// InfluxSink writes one point per step using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      zerolog.Logger
}

func NewInfluxSink(cfg InfluxConfig, log zerolog.Logger) *InfluxSink {
	client := influxdb2.NewClientWithOptions(cfg.URL, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      log,
	}
}

// NewInfluxSinkWithFallback pings the endpoint first and returns a NopSink
// when the health check fails, so a missing database never blocks a run.
func NewInfluxSinkWithFallback(cfg InfluxConfig, log zerolog.Logger) Sink {
	sink := NewInfluxSink(cfg, log)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			log.Error().Err(err).Msg("influx health check failed, telemetry disabled")
		} else {
			log.Error().Str("status", string(health.Status)).Msg("influx unhealthy, telemetry disabled")
		}
		sink.client.Close()
		return NopSink{}
	}
	return sink
}

func (s *InfluxSink) Record(snap sim.Snapshot) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	p := write.NewPointWithMeasurement("fcsim").
		AddField("voltage", snap.FuelCell.Voltage).
		AddField("current", snap.FuelCell.Current).
		AddField("temperature", snap.FuelCell.Temperature).
		AddField("hydration", snap.FuelCell.MembraneHydration).
		AddField("oxygen", snap.FuelCell.OxygenConcentration).
		AddField("soc", snap.Battery.SoC).
		AddField("battery_voltage", snap.Battery.Voltage).
		AddField("battery_current", snap.Battery.Current).
		AddField("battery_temp", snap.Battery.Temperature).
		AddField("manifold_pressure", snap.Manifold.Pressure).
		AddField("compressor_speed", snap.Compressor.Speed).
		AddField("load", snap.Load).
		AddField("charging", boolField(snap.Charging)).
		AddField("cooling", boolField(snap.CoolingActive)).
		SetTime(time.Now())

	return s.writeAPI.WritePoint(ctx, p)
}

func (s *InfluxSink) Close() { s.client.Close() }

func boolField(b bool) int {
	if b {
		return 1
	}
	return 0
}
