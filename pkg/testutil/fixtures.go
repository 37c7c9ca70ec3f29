package testutil

import (
	"github.com/google/uuid"
)

// Sample texts with known scores under the built-in rule table.
const (
	// Guaranteed Returns, Pressure Tactics and Unrealistic Returns: 90, high.
	ScamPitch = "This investment is guaranteed to return 500% in 24 hours, act now!"
	// No indicators: 0, low.
	LegitimatePitch = "Our fund offers a steady 8% annual return with full SEC disclosure."
	// Pressure/Exclusivity and Unregulated Platforms: 30, low.
	ExclusiveGroupPitch = "Join our exclusive VIP Telegram group for insider tips, limited spots available!"
	// Guaranteed Returns and Pressure Tactics: 60, medium.
	UrgentGuaranteePitch = "Act now, your returns are guaranteed"
)

// Fixed UUIDs for deterministic testing
var (
	TestAnalysisID1 = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestAnalysisID2 = uuid.MustParse("00000000-0000-0000-0000-000000000002")
)
