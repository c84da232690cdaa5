package coordinator

import (
	"github.com/bitmark-inc/roadside-api/schema"
)

// ViewFor shapes a request for one viewer. The requester sees every open
// proposal, any other account only its own. The payment method stays with
// the two participants.
func ViewFor(r *schema.Request, viewerID string) *schema.Request {
	v := *r
	proposals := make([]schema.PendingHelper, 0, len(r.PendingHelpers))

	for _, p := range r.PendingHelpers {
		if p.Helper == r.Helper {
			continue
		}
		if viewerID == r.Requester || p.Helper == viewerID {
			proposals = append(proposals, p)
		}
	}
	v.PendingHelpers = proposals

	if !r.IsParticipant(viewerID) {
		v.Payment.PaymentMethod = ""
	}

	if v.Photos == nil {
		v.Photos = []schema.Photo{}
	}

	return &v
}

func viewsFor(requests []schema.Request, viewerID string) []*schema.Request {
	views := make([]*schema.Request, 0, len(requests))
	for i := range requests {
		views = append(views, ViewFor(&requests[i], viewerID))
	}
	return views
}
