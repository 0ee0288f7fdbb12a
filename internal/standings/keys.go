package standings

import "fmt"

// Redis key pattern helpers
//
// All keys and channels are namespaced so several tournament setups can share
// one Redis server.
//
// Key pattern: dilemma:{namespace}:{entity}:{id}
// Channel pattern: dilemma:{namespace}:{event_type}_events

// RunKey returns the Redis key for a run hash.
// Pattern: dilemma:{namespace}:run:{run_id}
func RunKey(namespace, runID string) string {
	return fmt.Sprintf("dilemma:%s:run:%s", namespace, runID)
}

// RunIndexKey returns the Redis key for the ZSET of run IDs scored by creation time.
// Pattern: dilemma:{namespace}:runs
func RunIndexKey(namespace string) string {
	return fmt.Sprintf("dilemma:%s:runs", namespace)
}

// RunEventsChannel returns the Pub/Sub channel a finished run is announced on.
// Pattern: dilemma:{namespace}:run_events
func RunEventsChannel(namespace string) string {
	return fmt.Sprintf("dilemma:%s:run_events", namespace)
}
