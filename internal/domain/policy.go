package domain

import (
	"fmt"
	"strings"
)

// PolicyRef identifies a policy in the surrounding CRM. The checklist
// service does not own policy data; it only needs a stable key.
type PolicyRef struct {
	PolicyNumber   string `json:"policyNumber,omitempty"`
	ID             int64  `json:"id,omitempty"`
	ExpirationDate string `json:"expirationDate,omitempty"`
}

// PolicyKeyFor derives the canonical checklist key for a policy.
// Precedence: policy number, then internal id, then expiration date.
// This is the only place the derivation lives; clients that used to
// each invent their own key must call through here.
func PolicyKeyFor(ref PolicyRef) string {
	if n := strings.TrimSpace(ref.PolicyNumber); n != "" {
		return n
	}
	if ref.ID > 0 {
		return fmt.Sprintf("id-%d", ref.ID)
	}
	if e := strings.TrimSpace(ref.ExpirationDate); e != "" {
		return "exp-" + e
	}
	return ""
}
