package model

import "time"

// Feedback is one participant feedback record. Read-only from this
// service's perspective: composed client-side, stored and timestamped by
// the remote backend.
type Feedback struct {
	ID               int64     `json:"id"`
	UniqueCode       string    `json:"unique_code"`
	FullName         string    `json:"full_name"`
	ClusterSalesArea string    `json:"cluster_sales_area"`
	DigitalSalesTool string    `json:"digital_sales_tool"`
	WhatWorks        string    `json:"what_works"`
	WhatIsConfusing  string    `json:"what_is_confusing"`
	WhatCanBeBetter  string    `json:"what_can_be_better"`
	CreatedAt        time.Time `json:"created_at"`
}

// FeedbackSubmission is the outbound feedback payload.
type FeedbackSubmission struct {
	UniqueCode       string `json:"unique_code"`
	FullName         string `json:"full_name" binding:"required"`
	ClusterSalesArea string `json:"cluster_sales_area"`
	DigitalSalesTool string `json:"digital_sales_tool"`
	WhatWorks        string `json:"what_works"`
	WhatIsConfusing  string `json:"what_is_confusing"`
	WhatCanBeBetter  string `json:"what_can_be_better"`
}
