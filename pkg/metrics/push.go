package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Push sends every metric in gatherer to a Prometheus Pushgateway under job,
// replacing the previous push for the same grouping.
func Push(ctx context.Context, url, job string, gatherer prometheus.Gatherer, grouping map[string]string) error {
	if url == "" {
		return nil
	}
	p := push.New(url, job).Gatherer(gatherer)
	for k, v := range grouping {
		p = p.Grouping(k, v)
	}
	if err := p.PushContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrPushFailed, err)
	}
	return nil
}
