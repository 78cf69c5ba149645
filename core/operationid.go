package core

import (
	"fmt"
	"strings"
	"sync"
	"unicode"
)

// OperationIDs hands out one unique operationId per method for a single
// generation run. IDs are memoized per method handle, so repeated calls
// are deterministic, and colliding base names are disambiguated with a
// numeric suffix in allocation order. Uniqueness is checked against every
// id handed out so far, not just same-base allocations: an explicit label
// such as getThings_2 blocks that suffix for derived ids too.
//
// The collision table is the only mutable state shared between renderers;
// it is mutex-guarded so they may run concurrently.
type OperationIDs struct {
	mu       sync.Mutex
	snap     *Snapshot
	byMethod map[Method]string
	taken    map[string]int
	claimed  map[string]struct{}
}

// NewOperationIDs returns a fresh allocator scoped to one run. State never
// persists across runs; construct a new allocator per document.
func NewOperationIDs(snap *Snapshot) *OperationIDs {
	return &OperationIDs{
		snap:     snap,
		byMethod: make(map[Method]string),
		taken:    make(map[string]int),
		claimed:  make(map[string]struct{}),
	}
}

// IDFor returns the operationId for m, allocating it on first use. The
// base name is the method's label when one was provided, otherwise it is
// derived from the verb and the owning resource's path. Methods unknown to
// the snapshot fail with ErrOrphanMethod.
func (o *OperationIDs) IDFor(m Method) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if id, ok := o.byMethod[m]; ok {
		return id, nil
	}

	base := sanitizeID(m.Label())
	if base == "" {
		owner, err := o.snap.OwnerOf(m)
		if err != nil {
			return "", fmt.Errorf("core: allocate operation id: %w", err)
		}
		base = deriveOperationID(m.HTTPMethod(), owner.Path())
	}

	id := base
	n := o.taken[base]
	for {
		if n > 0 {
			id = fmt.Sprintf("%s_%d", base, n+1)
		}
		if _, used := o.claimed[id]; !used {
			break
		}
		n++
	}
	o.taken[base] = n + 1
	o.claimed[id] = struct{}{}
	o.byMethod[m] = id
	return id, nil
}

// deriveOperationID builds a camel-cased identifier such as getUsersById
// from an HTTP verb and a path template.
func deriveOperationID(verb, path string) string {
	var sb strings.Builder
	sb.WriteString(strings.ToLower(strings.TrimSpace(verb)))

	for _, segment := range strings.Split(path, "/") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		if isTemplateSegment(segment) {
			sb.WriteString("By")
			sb.WriteString(capitalize(sanitizeID(templateName(segment))))
			continue
		}
		sb.WriteString(capitalize(sanitizeID(segment)))
	}

	if sb.Len() == 0 {
		return "operation"
	}
	return sb.String()
}

func isTemplateSegment(segment string) bool {
	return strings.HasPrefix(segment, "{") ||
		strings.HasPrefix(segment, ":") ||
		strings.HasPrefix(segment, "*")
}

func templateName(segment string) string {
	segment = strings.TrimPrefix(segment, ":")
	segment = strings.TrimPrefix(segment, "*")
	segment = strings.TrimPrefix(segment, "{")
	segment = strings.TrimSuffix(segment, "}")
	if segment == "" {
		return "param"
	}
	return segment
}

// sanitizeID keeps letters, digits and underscores; anything else becomes
// a word boundary that capitalizes the next rune.
func sanitizeID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	var sb strings.Builder
	upperNext := false
	for _, r := range raw {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			if upperNext {
				r = unicode.ToUpper(r)
				upperNext = false
			}
			sb.WriteRune(r)
		default:
			upperNext = sb.Len() > 0
		}
	}
	return sb.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
