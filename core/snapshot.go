package core

import (
	"errors"
	"fmt"
)

// ErrUnknownAPI is returned when a lookup names an API handle that was not
// part of the Snapshot's construction set. It indicates a defect in the
// caller, not a recoverable condition.
var ErrUnknownAPI = errors.New("api handle not part of snapshot")

// ErrOrphanMethod is returned when a method cannot be traced back to any
// resource known to the Snapshot. Methods must be the exact values
// enumerated through the Snapshot; reconstructed look-alikes do not count.
var ErrOrphanMethod = errors.New("method not owned by any snapshot resource")

// Snapshot is a stable view over the provider-supplied resource model.
//
// Providers are free to rebuild their group objects on every call, which
// makes identity-based caching on top of them impossible. The Snapshot
// therefore calls ResourceGroups exactly once per API handle at
// construction and serves the cached result for the rest of the run. It is
// the single source of group, resource and method values for all document
// renderers.
type Snapshot struct {
	apis   []ResourceApi
	groups map[ResourceApi][]ResourceGroup
	flat   []ResourceGroup
}

// NewSnapshot caches the resource groups of each supplied API. API order
// and each API's own group order are preserved. A duplicate handle is
// enumerated only once.
func NewSnapshot(apis []ResourceApi) *Snapshot {
	s := &Snapshot{
		apis:   make([]ResourceApi, 0, len(apis)),
		groups: make(map[ResourceApi][]ResourceGroup, len(apis)),
	}
	for _, api := range apis {
		if api == nil {
			continue
		}
		if _, seen := s.groups[api]; seen {
			continue
		}
		groups := api.ResourceGroups()
		s.apis = append(s.apis, api)
		s.groups[api] = groups
		s.flat = append(s.flat, groups...)
	}
	return s
}

// APIs returns the handles the snapshot was built from, in input order.
func (s *Snapshot) APIs() []ResourceApi {
	return s.apis
}

// ResourceGroups returns all groups across all APIs, flattened in input
// order. The slice is cached; callers must not mutate it.
func (s *Snapshot) ResourceGroups() []ResourceGroup {
	return s.flat
}

// GroupsFor returns the cached groups of one API handle.
func (s *Snapshot) GroupsFor(api ResourceApi) ([]ResourceGroup, error) {
	groups, ok := s.groups[api]
	if !ok {
		name := "<nil>"
		if api != nil {
			name = api.Name()
		}
		return nil, fmt.Errorf("core: no cached groups for api %q: %w", name, ErrUnknownAPI)
	}
	return groups, nil
}

// OwnerOf returns the first resource whose method collection contains m,
// comparing by identity. The scan is linear over all resources; call
// volume is bounded by the size of one document, so no index is kept.
func (s *Snapshot) OwnerOf(m Method) (Resource, error) {
	for _, group := range s.flat {
		for _, resource := range group.Resources() {
			for _, candidate := range resource.Methods() {
				if candidate == m {
					return resource, nil
				}
			}
		}
	}
	return nil, fmt.Errorf("core: %w", ErrOrphanMethod)
}
