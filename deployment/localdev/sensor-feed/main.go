// Command sensor-feed replays synthetic engine readings against a running
// engine-condition gRPC server for local development.
package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/miradorstack/engine-condition/internal/api"
	"github.com/miradorstack/engine-condition/internal/grpc/enginev1"
	"github.com/miradorstack/engine-condition/internal/models"
	"github.com/miradorstack/engine-condition/internal/utils"
)

func main() {
	var (
		address  string
		count    int
		interval time.Duration
		spread   float64
		seed     int64
	)
	flag.StringVar(&address, "address", "127.0.0.1:50061", "engine-condition gRPC address")
	flag.IntVar(&count, "count", 20, "number of readings to send; 0 sends until interrupted")
	flag.DurationVar(&interval, "interval", time.Second, "delay between readings")
	flag.Float64Var(&spread, "spread", 0.35, "fraction of each range to wander around the midpoint")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	logger := utils.NewLogger("info", false)

	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		logger.Error("dial failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer conn.Close()
	client := enginev1.NewEngineConditionClient(conn)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rng := rand.New(rand.NewSource(seed))
	specs := models.DefaultSensorSpecs()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for sent := 0; count == 0 || sent < count; sent++ {
		reading := synthesize(rng, specs, spread)
		callCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		resp, err := client.PredictCondition(callCtx, api.ToProtoReading(reading))
		cancel()
		if err != nil {
			logger.Warn("prediction failed", slog.String("code", status.Code(err).String()), slog.Any("error", err))
		} else {
			fields := resp.GetFields()
			logger.Info("prediction",
				slog.Float64("engine_rpm", reading.EngineRPM),
				slog.String("verdict", fields["verdict"].GetStringValue()),
				slog.Int("advisories", len(fields["advisories"].GetListValue().GetValues())),
			)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// synthesize draws every field uniformly from a window around its midpoint,
// clipped to the catalog bounds.
func synthesize(rng *rand.Rand, specs []models.SensorSpec, spread float64) models.SensorReading {
	values := make([]float64, models.FieldCount)
	for _, spec := range specs {
		half := (spec.Max - spec.Min) * spread
		v := spec.Default() + (rng.Float64()*2-1)*half
		if v < spec.Min {
			v = spec.Min
		}
		if v > spec.Max {
			v = spec.Max
		}
		values[spec.Field] = v
	}
	reading, _ := models.ReadingFromValues(values)
	return reading
}
