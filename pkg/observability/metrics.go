// Package observability emits operational metrics to CloudWatch.
package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// Metrics publishes counters and timings under a namespace. A nil *Metrics
// is a no-op, so callers never need to guard their instrumentation.
type Metrics struct {
	client    *cloudwatch.Client
	namespace string
	logger    *zap.Logger
}

// NewMetrics creates a metrics publisher.
func NewMetrics(namespace string, client *cloudwatch.Client, logger *zap.Logger) *Metrics {
	return &Metrics{
		client:    client,
		namespace: namespace,
		logger:    logger,
	}
}

// Count publishes a count metric.
func (m *Metrics) Count(name string, value float64) {
	m.put(name, value, types.StandardUnitCount)
}

// Timing publishes a duration metric in milliseconds.
func (m *Metrics) Timing(name string, d time.Duration) {
	m.put(name, float64(d.Milliseconds()), types.StandardUnitMilliseconds)
}

// put ships the datum asynchronously; metric delivery must never slow down
// or fail a request.
func (m *Metrics) put(name string, value float64, unit types.StandardUnit) {
	if m == nil || m.client == nil {
		return
	}

	datum := types.MetricDatum{
		MetricName: aws.String(name),
		Value:      aws.Float64(value),
		Unit:       unit,
		Timestamp:  aws.Time(time.Now()),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace:  aws.String(m.namespace),
			MetricData: []types.MetricDatum{datum},
		})
		if err != nil && m.logger != nil {
			m.logger.Warn("failed to publish metric",
				zap.String("metric", name),
				zap.Error(err),
			)
		}
	}()
}
