package scheduler

import "go.trai.ch/splitter/internal/core/domain"

// StatusMap returns a copy of the internal status map.
// This is exported for testing purposes only.
func (s *Scheduler) StatusMap() map[string]domain.BuildStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	statusMap := make(map[string]domain.BuildStatus, len(s.status))
	for k, v := range s.status {
		statusMap[k] = v
	}
	return statusMap
}

// OutputGroups exposes outputGroups for testing.
func OutputGroups(configs []*domain.BuildConfig) [][]int {
	return outputGroups(configs)
}
