package notification

import "time"

// DispatchRequest is the envelope the primind-tasks dispatch service
// accepts: a base64-encoded notification payload plus an optional absolute
// schedule time.
type DispatchRequest struct {
	Task DispatchTask `json:"task"`
}

type DispatchTask struct {
	HTTPRequest  DispatchHTTPRequest `json:"httpRequest"`
	ScheduleTime string              `json:"scheduleTime,omitempty"`
}

type DispatchHTTPRequest struct {
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

type DispatchResponse struct {
	Name         string `json:"name"`
	ScheduleTime string `json:"scheduleTime"`
	CreateTime   string `json:"createTime"`
}

type TaskInfo struct {
	Name         string
	ScheduleTime time.Time
	CreateTime   time.Time
}

// PermissionResponse reports the device-side notification permission state
// as known to the dispatch service.
type PermissionResponse struct {
	Granted bool `json:"granted"`
}
