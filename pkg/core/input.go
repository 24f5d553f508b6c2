package core

import "math"

// QAInput is one question-answering tuple to score.
type QAInput struct {
	Question    string            `json:"question" yaml:"question"`
	Answer      string            `json:"answer" yaml:"answer"`
	Context     string            `json:"context" yaml:"context"`
	GroundTruth string            `json:"ground_truth" yaml:"ground_truth"`
	Extra       map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// MetricResult maps metric names to scores. Scores are usually float64
// but evaluators may emit strings.
type MetricResult map[string]any

// Merge copies every entry of other into m. Later merges overwrite
// earlier values on key collision.
func (m MetricResult) Merge(other MetricResult) {
	for key, value := range other {
		m[key] = value
	}
}

// Float returns the value for key as a float64 when it is numeric.
func (m MetricResult) Float(key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// Sanitize returns a copy with NaN and infinite float scores replaced
// by nil, so the result can pass through encoding/json.
func (m MetricResult) Sanitize() MetricResult {
	out := make(MetricResult, len(m))
	for key, value := range m {
		if f, ok := value.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			out[key] = nil
			continue
		}
		out[key] = value
	}
	return out
}

// Keys returns the metric names present in m.
func (m MetricResult) Keys() []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	return keys
}
