package metrics

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const (
	namespace             = "HARMONY/API"
	httpStatusServerError = 500
	putTimeout            = 5 * time.Second
)

// Client ships request and engine metrics to CloudWatch. Each Record call
// sends one PutMetricData batch in the background.
type Client struct {
	client      *cloudwatch.Client
	enabled     bool
	environment string
}

// NewClient creates a CloudWatch client. Outside production, or when AWS
// config cannot be loaded, it returns a disabled client and no error.
func NewClient(ctx context.Context, environment string) (*Client, error) {
	if environment != "production" {
		log.Printf("📊 CloudWatch Metrics: DISABLED (environment: %s)", environment)
		return &Client{environment: environment}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Printf("⚠️  Failed to load AWS config for CloudWatch: %v", err)
		return &Client{environment: environment}, nil
	}

	log.Printf("📊 CloudWatch Metrics: ✅ ENABLED (namespace: %s)", namespace)
	return &Client{
		client:      cloudwatch.NewFromConfig(cfg),
		enabled:     true,
		environment: environment,
	}, nil
}

// Enabled reports whether metrics are being shipped to CloudWatch
func (m *Client) Enabled() bool {
	return m != nil && m.enabled
}

// RecordAPIRequest counts a request as APIRequests or APIErrors and records
// its latency, both per endpoint.
func (m *Client) RecordAPIRequest(endpoint string, statusCode int, duration time.Duration) {
	if !m.Enabled() {
		return
	}
	name := "APIRequests"
	if statusCode >= httpStatusServerError {
		name = "APIErrors"
	}
	d := m.dimensions("Endpoint", endpoint)
	m.publish(
		datum(name, 1, types.StandardUnitCount, d),
		datum("APILatency", float64(duration.Milliseconds()), types.StandardUnitMilliseconds, d),
	)
}

// RecordComputation counts one engine operation and records its latency
func (m *Client) RecordComputation(operation string, duration time.Duration, success bool) {
	if !m.Enabled() {
		return
	}
	d := m.dimensions("Operation", operation, "Success", strconv.FormatBool(success))
	m.publish(
		datum("Computations", 1, types.StandardUnitCount, d),
		datum("ComputationLatency", float64(duration.Microseconds())/1000, types.StandardUnitMilliseconds, d),
	)
}

// RecordMIDIExport records the size of a rendered MIDI file
func (m *Client) RecordMIDIExport(events, size int) {
	if !m.Enabled() {
		return
	}
	d := m.dimensions()
	m.publish(
		datum("MIDIExportBytes", float64(size), types.StandardUnitBytes, d),
		datum("MIDIExportEvents", float64(events), types.StandardUnitCount, d),
	)
}

// dimensions pairs up name/value arguments and adds the environment
func (m *Client) dimensions(pairs ...string) []types.Dimension {
	out := make([]types.Dimension, 0, len(pairs)/2+1)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, types.Dimension{Name: aws.String(pairs[i]), Value: aws.String(pairs[i+1])})
	}
	return append(out, types.Dimension{Name: aws.String("Environment"), Value: aws.String(m.environment)})
}

func datum(name string, value float64, unit types.StandardUnit, dims []types.Dimension) types.MetricDatum {
	return types.MetricDatum{
		MetricName: aws.String(name),
		Value:      aws.Float64(value),
		Unit:       unit,
		Timestamp:  aws.Time(time.Now()),
		Dimensions: dims,
	}
}

func (m *Client) publish(data ...types.MetricDatum) {
	if m.client == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), putTimeout)
		defer cancel()

		_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace:  aws.String(namespace),
			MetricData: data,
		})
		if err != nil {
			log.Printf("Failed to publish %d CloudWatch metrics: %v", len(data), err)
		}
	}()
}
