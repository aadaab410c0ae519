package assistant

import (
	"context"
	"strings"

	"github.com/folio-site/folio/pkg/models"
)

// healthCheckQuery is the fixed diagnostic question.
const healthCheckQuery = "Who are you?"

// healthSessionID keeps diagnostic turns out of real conversations.
const healthSessionID = "health-check"

// identityKeywords mark a reply as coming from a correctly-primed assistant.
var identityKeywords = []string{"assistant", "virtual", "portfolio"}

// CheckHealth runs the full dispatch path with a fixed diagnostic question in
// silent mode and scans the reply for identity keywords. Because it reuses
// Respond end to end, it exercises caching and fallback exactly as a real
// call would.
func (a *Assistant) CheckHealth(ctx context.Context) (bool, models.Mode) {
	reply, mode := a.respond(ctx, healthSessionID, healthCheckQuery, true)

	lower := strings.ToLower(reply)
	for _, keyword := range identityKeywords {
		if strings.Contains(lower, keyword) {
			return true, mode
		}
	}
	return false, mode
}
