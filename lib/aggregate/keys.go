package aggregate

import "fmt"

// Built-in key extractors for the grouping dimensions the collector
// tags observations with.
func ByResourceKind(o Observation) string { return o.Kind }
func ByNodeName(o Observation) string     { return o.Location.NodeName }
func ByNamespace(o Observation) string    { return o.Location.Namespace }
func ByPodName(o Observation) string      { return o.Location.PodName }

var keyFuncsByName = map[string]KeyFunc{
	"resource":  ByResourceKind,
	"node":      ByNodeName,
	"namespace": ByNamespace,
	"pod":       ByPodName,
}

// KeysFor resolves grouping dimension names into key functions,
// preserving order. Known names: resource, node, namespace, pod.
func KeysFor(names []string) ([]KeyFunc, error) {
	keys := make([]KeyFunc, 0, len(names))
	for _, name := range names {
		key, ok := keyFuncsByName[name]
		if !ok {
			return nil, fmt.Errorf("unknown group-by dimension %q", name)
		}
		keys = append(keys, key)
	}
	return keys, nil
}
