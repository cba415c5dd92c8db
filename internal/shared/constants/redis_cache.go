package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTL values for the Rently application.
// Pattern: rently:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

const (
	// Catalog data, changes rarely
	TTL_FACILITY_CATALOG = 6 * time.Hour
	TTL_EVENT_DETAIL     = 15 * time.Minute
	TTL_EVENT_LISTING    = 15 * time.Minute

	// Approval page data, changes with every decision
	TTL_APPROVAL_SUMMARY = 2 * time.Minute
	TTL_EVENT_APPS       = 1 * time.Minute
)

// ================== CACHE KEY BUILDERS ==================

func FacilityCatalogKey(statusFilter string) string {
	return fmt.Sprintf("rently:facilities:catalog:%s", statusFilter)
}

func EventListKey(statusFilter string) string {
	return fmt.Sprintf("rently:events:list:%s", statusFilter)
}

func EventDetailKey(eventID string) string {
	return fmt.Sprintf("rently:events:detail:%s", eventID)
}

func ApprovalSummaryKey(statusFilter string) string {
	return fmt.Sprintf("rently:approvals:summary:%s", statusFilter)
}

func EventApplicationsKey(eventID, statusFilter, search, sortOrder string) string {
	return fmt.Sprintf("rently:approvals:event:%s:%s:%s:%s", eventID, statusFilter, search, sortOrder)
}

// Patterns used for invalidation after a decision mutates approval state
const (
	ApprovalSummaryPattern   = "rently:approvals:summary:*"
	EventApplicationsPattern = "rently:approvals:event:*"
	EventCachePattern        = "rently:events:*"
	FacilityCachePattern     = "rently:facilities:*"
)
