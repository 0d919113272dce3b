package protocol

import "time"

type CreateOperationRequest struct {
	Kind  string   `json:"kind"`
	Hosts []string `json:"hosts"`
	// HostList is the packed hidden-field form of Hosts, separated by ";"
	// or ",". Both may be given.
	HostList string `json:"host_list,omitempty"`
}

type Operation struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	CreatedUTC time.Time `json:"created_utc"`
	UpdatedUTC time.Time `json:"updated_utc"`
}

type CreateOperationResponse struct {
	Operation Operation `json:"operation"`
}

type RecordHostResultRequest struct {
	Host   string `json:"host"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type ServerInfo struct {
	Name       string `json:"name"`
	APIVersion int    `json:"api_version"`
	Version    string `json:"version"`
	Hostname   string `json:"hostname,omitempty"`
	AppRoot    string `json:"app_root"`
}

type ListOperationsResponse struct {
	Operations []Operation `json:"operations"`
}
