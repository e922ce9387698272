package metrics

import (
	"fmt"
	"os"

	"github.com/opencost/matchkit/pkg/log"
	"github.com/opencost/matchkit/pkg/util/json"
)

// MetricsConfig selects which named matchers are not counted.
type MetricsConfig struct {
	DisabledMetrics []string `json:"disabledMetrics"`
}

func (mc MetricsConfig) GetDisabledMetricsMap() map[string]struct{} {
	disabledMetricsMap := make(map[string]struct{})

	for i := range mc.DisabledMetrics {
		disabledMetricsMap[mc.DisabledMetrics[i]] = struct{}{}
		log.Infof("Adding disabled metric %s", mc.DisabledMetrics[i])
	}

	return disabledMetricsMap
}

// GetMetricsConfig reads a JSON metrics config from path. A missing file is an
// empty config.
func GetMetricsConfig(path string) (*MetricsConfig, error) {
	mc := &MetricsConfig{}
	if path == "" {
		return mc, nil
	}

	body, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return mc, nil
	} else if err != nil {
		return mc, err
	}

	err = json.Unmarshal(body, mc)
	if err != nil {
		return mc, fmt.Errorf("failed to unmarshal metrics config %s: %w", path, err)
	}

	return mc, nil
}
