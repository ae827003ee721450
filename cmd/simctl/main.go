// Command simctl publishes a simulation control message to the Pub/Sub topic
// the service subscribes to.
//
// Usage:
//
//	simctl -project water-project -topic simulation-control start -interval 300
//	simctl -project water-project stop
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"github.com/rs/zerolog"

	"github.com/aquasentinel/aquasentinel/internal/worker"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if err := run(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("simctl failed")
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("simctl", flag.ContinueOnError)
	project := fs.String("project", os.Getenv("PUBSUB_PROJECT_ID"), "Google Cloud project id")
	topic := fs.String("topic", "simulation-control", "control topic")
	timeout := fs.Duration("timeout", 30*time.Second, "publish timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *project == "" {
		return fmt.Errorf("-project or PUBSUB_PROJECT_ID is required")
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("usage: simctl [flags] start|stop|refresh|status [-interval seconds]")
	}

	cm := worker.ControlMessage{Command: fs.Arg(0)}
	if cm.Command == worker.CommandStart {
		sub := flag.NewFlagSet("start", flag.ContinueOnError)
		interval := sub.Int("interval", 0, "tick interval in seconds, 0 keeps the configured one")
		if err := sub.Parse(fs.Args()[1:]); err != nil {
			return err
		}
		cm.IntervalSeconds = *interval
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client, err := pubsub.NewClient(ctx, *project)
	if err != nil {
		return fmt.Errorf("creating pubsub client: %w", err)
	}
	defer client.Close()

	id, err := worker.PublishControl(ctx, client, *topic, cm)
	if err != nil {
		return err
	}
	fmt.Printf("published %s (message %s)\n", cm.Command, id)
	return nil
}
