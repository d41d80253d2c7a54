package domain

import (
	"strings"
)

// DirectoryStatus - состояние каталога в рамках сессии
type DirectoryStatus string

const (
	StatusUninitialized DirectoryStatus = "uninitialized"
	StatusLoading       DirectoryStatus = "loading"
	StatusReady         DirectoryStatus = "ready"
	StatusError         DirectoryStatus = "error"
)

// DirectoryState is a point-in-time view of the area directory.
type DirectoryState struct {
	Status     DirectoryStatus `json:"status"`
	FromCache  bool            `json:"from_cache"`
	Refreshing bool            `json:"refreshing"`
	Count      int             `json:"count"`
}

// Fresh reports whether the list came from the remote source and no refresh is pending.
func (s DirectoryState) Fresh() bool {
	return s.Status == StatusReady && !s.FromCache && !s.Refreshing
}

// SearchFilter - текстовый запрос и фильтр по бренду
type SearchFilter struct {
	Query string
	Brand string
}

// Apply returns the matching areas in source order.
// Name matching is case-insensitive, brand matching is exact.
func (f SearchFilter) Apply(areas []ServiceArea) []ServiceArea {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	result := make([]ServiceArea, 0, len(areas))
	for _, a := range areas {
		if f.matches(a, q) {
			result = append(result, a)
		}
	}
	return result
}

func (f SearchFilter) matches(a ServiceArea, q string) bool {
	if q != "" && !strings.Contains(strings.ToLower(a.Name), q) {
		return false
	}
	if !IsAllBrands(f.Brand) && string(a.Brand) != f.Brand {
		return false
	}
	return true
}
