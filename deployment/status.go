// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package deployment

// Status describes how a local configuration checkout relates to the
// configuration the resolver currently answers with.
type Status int

const (
	// Missing means no checkout directory exists.
	Missing Status = iota
	// Invalid means the directory exists but its deployment record is
	// absent, unreadable, or an update was interrupted midway.
	Invalid
	// Different means the record is readable but no longer matches the
	// current resolution, or the deployed descriptor is mutable and so
	// cannot be assumed unchanged.
	Different
	// UpToDate means the record matches the current resolution exactly
	// and the deployed descriptor is immutable.
	UpToDate
)

func (s Status) String() string {
	switch s {
	case Missing:
		return "MISSING"
	case Invalid:
		return "INVALID"
	case Different:
		return "DIFFERENT"
	case UpToDate:
		return "UP_TO_DATE"
	default:
		return "UNKNOWN"
	}
}
