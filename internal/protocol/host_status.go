package protocol

import (
	"encoding/xml"
	"strings"
)

const (
	HostStatusPending   = "pending"
	HostStatusRunning   = "running"
	HostStatusSucceeded = "succeeded"
	HostStatusFailed    = "failed"
)

func NormalizeHostStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

func IsPendingHostStatus(status string) bool {
	switch NormalizeHostStatus(status) {
	case HostStatusPending, HostStatusRunning:
		return true
	default:
		return false
	}
}

func IsTerminalHostStatus(status string) bool {
	switch NormalizeHostStatus(status) {
	case HostStatusSucceeded, HostStatusFailed:
		return true
	default:
		return false
	}
}

func IsValidHostStatus(status string) bool {
	return IsPendingHostStatus(status) || IsTerminalHostStatus(status)
}

// HostStatusSummary is the XML document served to the multi-host status
// window while an operation fans out across hosts.
type HostStatusSummary struct {
	XMLName     xml.Name     `xml:"summary" json:"-"`
	OperationID string       `xml:"operation,attr,omitempty" json:"operation_id,omitempty"`
	Total       int          `xml:"total" json:"total"`
	Succeeded   int          `xml:"succeeded" json:"succeeded"`
	Failed      int          `xml:"failed" json:"failed"`
	Pending     int          `xml:"pending" json:"pending"`
	Hosts       []HostStatus `xml:"host" json:"hosts,omitempty"`
}

type HostStatus struct {
	Name   string `xml:"name,attr" json:"name"`
	Status string `xml:"status,attr" json:"status"`
	Error  string `xml:"error,omitempty" json:"error,omitempty"`
}

// Done reports whether every host has reached a terminal state.
func (s HostStatusSummary) Done() bool {
	return s.Total > 0 && s.Pending == 0
}

// Tally recomputes the counters from the host list.
func Tally(operationID string, hosts []HostStatus) HostStatusSummary {
	out := HostStatusSummary{OperationID: operationID, Total: len(hosts), Hosts: hosts}
	for _, h := range hosts {
		switch NormalizeHostStatus(h.Status) {
		case HostStatusSucceeded:
			out.Succeeded++
		case HostStatusFailed:
			out.Failed++
		default:
			out.Pending++
		}
	}
	return out
}
