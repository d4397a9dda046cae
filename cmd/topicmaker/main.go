package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/niksmo/catalog/config"
	"github.com/niksmo/catalog/internal/adapter"
	"github.com/niksmo/catalog/pkg/sigctx"
	"github.com/spf13/pflag"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

const cleanupPolicy = "delete"

type topicSettings struct {
	partitions        int32
	replicationFactor int16
	minISR            int
}

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	settings := parseFlags()

	cfg := config.Load()
	if !cfg.EventsEnabled() {
		fmt.Println("broker is not configured, nothing to do")
		return
	}

	cl := createClient(cfg)
	defer cl.Close()

	topic := cfg.Broker.Topics.ProductEvents

	printStart(topic, settings)
	defer printComplete(time.Now())

	if err := makeTopics(sigCtx, cl, settings, topic); err != nil {
		printFail(err)
		return
	}
}

func parseFlags() topicSettings {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	cmdLine.ParseErrorsWhitelist.UnknownFlags = true
	partitions := cmdLine.Int32("partitions", 3, "topic partitions")
	replicationFactor := cmdLine.Int16("replication-factor", 3, "topic replication factor")
	minISR := cmdLine.Int("min-insync-replicas", 1, "min.insync.replicas topic config")
	_ = cmdLine.Parse(os.Args[1:])

	return topicSettings{
		partitions:        *partitions,
		replicationFactor: *replicationFactor,
		minISR:            *minISR,
	}
}

func createClient(cfg config.Config) *kadm.Client {
	opts := []kgo.Opt{kgo.SeedBrokers(cfg.Broker.SeedBrokers...)}

	if cfg.TLSEnabled() {
		tlsFiles := cfg.Broker.TLS
		tlsConfig, err := adapter.MakeTLSConfig(tlsFiles.CA, tlsFiles.Cert, tlsFiles.Key)
		if err != nil {
			panic(err)
		}
		opts = append(opts, kgo.DialTLSConfig(tlsConfig))
	}

	cl, err := kadm.NewOptClient(opts...)
	if err != nil {
		panic(err) // develop mistake
	}
	return cl
}

func makeTopics(
	ctx context.Context, cl *kadm.Client, s topicSettings, topics ...string,
) error {
	var (
		policy = cleanupPolicy
		minISR = strconv.Itoa(s.minISR)
	)

	config := map[string]*string{
		"cleanup.policy":      &policy,
		"min.insync.replicas": &minISR,
	}

	responses, err := cl.CreateTopics(
		ctx,
		s.partitions,
		s.replicationFactor,
		config,
		topics...,
	)
	if err != nil {
		return err
	}

	var errs []error
	for _, res := range responses.Sorted() {
		if res.Err != nil {
			if errors.Is(res.Err, kerr.TopicAlreadyExists) {
				fmt.Printf("topic: %q already exists\n", res.Topic)
			} else {
				errs = append(errs, fmt.Errorf("%s: %w", res.Topic, res.Err))
			}
			continue
		}
		fmt.Printf("topic: %q successfully created\n", res.Topic)
	}

	return errors.Join(errs...)
}

func printStart(topic string, s topicSettings) {
	fmt.Printf(`initializing topics...
	- %q (partitions=%d, replication=%d, min.insync.replicas=%d)

`,
		topic, s.partitions, s.replicationFactor, s.minISR,
	)
}

func printComplete(start time.Time) {
	fmt.Printf("\ncomplete in %s\n", time.Since(start))
}

func printFail(err error) {
	fmt.Printf("failed to create topics: \n%s\n", err)
}
