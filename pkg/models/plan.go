package models

import (
	"time"
)

// Suggestion pairs a file with the human-readable reason it was matched
type Suggestion struct {
	File   FileRecord
	Reason string
}

// PlanEntry is one proposed move in an organization plan
type PlanEntry struct {
	// Source is the current absolute path of the file
	Source string `json:"source"`

	// Target is the proposed destination path (target folder + file name)
	Target string `json:"target"`

	// Reason explains which rule matched
	Reason string `json:"reason"`

	// SizeBytes is the file size, carried for reporting
	SizeBytes int64 `json:"size_bytes"`
}

// OrganizationPlan is an ordered list of proposed moves
type OrganizationPlan []PlanEntry

// TotalBytes returns the cumulative size of all planned moves
func (p OrganizationPlan) TotalBytes() int64 {
	var total int64
	for i := range p {
		total += p[i].SizeBytes
	}
	return total
}

// ExecutionStats tallies the outcome of applying a plan
type ExecutionStats struct {
	Success int
	Failed  int
	Skipped int
}

// Total returns the number of operations accounted for
func (s ExecutionStats) Total() int {
	return s.Success + s.Failed + s.Skipped
}

// OperationKind identifies the type of a logged filesystem operation
type OperationKind string

const (
	// OpMove is a file move
	OpMove OperationKind = "move"
	// OpDelete is a file deletion
	OpDelete OperationKind = "delete"
	// OpRemoveDir is an empty-directory removal
	OpRemoveDir OperationKind = "rmdir"
)

// OperationLogEntry is one record in the persisted operation log
type OperationLogEntry struct {
	Kind      OperationKind `json:"kind"`
	Source    string        `json:"source,omitempty"`
	Target    string        `json:"target,omitempty"`
	Path      string        `json:"path,omitempty"`
	Backup    string        `json:"backup,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}
