package recurrence

import (
	"strings"
	"time"
)

const instanceLayout = "2006-01-02T15:04:05.000Z"

// InstanceID synthesizes the id of one occurrence. It is only valid for the
// lifetime of a query result and must be mapped back with TemplateID before
// any write.
func InstanceID(templateID string, start time.Time) string {
	return templateID + "_" + start.UTC().Format(instanceLayout)
}

// TemplateID strips an occurrence suffix. Ids without one are returned as is.
func TemplateID(id string) string {
	i := strings.LastIndex(id, "_")
	if i < 0 {
		return id
	}

	if _, err := time.Parse(instanceLayout, id[i+1:]); err != nil {
		return id
	}

	return id[:i]
}

// InstanceStart returns the start encoded in an occurrence id.
func InstanceStart(id string) (time.Time, bool) {
	i := strings.LastIndex(id, "_")
	if i < 0 {
		return time.Time{}, false
	}

	start, err := time.Parse(instanceLayout, id[i+1:])
	if err != nil {
		return time.Time{}, false
	}

	return start, true
}
