// Package priority implements the pure round-robin selector shared by
// interface rotation and SSID rotation.
package priority

import "errors"

// ErrEmptyPriority is returned when the priority list has no entries.
// Callers are expected to guard against this; it signals a config bug.
var ErrEmptyPriority = errors.New("priority: empty priority list")

// Choose returns the next element of priority relative to current:
//   - if priority is empty, ErrEmptyPriority.
//   - if current is nil, priority[0].
//   - else the cyclic successor of the first match of *current in priority;
//     if current isn't found, priority[0].
func Choose(current *string, list []string) (string, error) {
	if len(list) == 0 {
		return "", ErrEmptyPriority
	}
	if current == nil {
		return list[0], nil
	}
	for i, item := range list {
		if item == *current {
			return list[(i+1)%len(list)], nil
		}
	}
	return list[0], nil
}
