package commands

import (
	"strings"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/core/domain/model/proof"
)

// resolveProofSubject maps a capture subject reference onto the order graph.
// An empty reference or one without a type prefix resolves to the order
// itself; "place"/"waypoint" prefixes resolve to a waypoint; "entity"
// resolves to a line item. Anything else fails with
// proof.ErrSubjectNotResolved.
func resolveProofSubject(o *order.Order, subjectRef string) (proof.SubjectType, kernel.UUID, error) {
	prefix, _, found := strings.Cut(subjectRef, "_")
	if subjectRef == "" || !found {
		return proof.SubjectOrder, o.ID(), nil
	}

	ref, err := kernel.PublicIDFromString(subjectRef)
	if err != nil {
		return "", kernel.UUID{}, proof.ErrSubjectNotResolved
	}

	switch prefix {
	case "order":
		if !o.PublicID().IsEqual(ref) {
			return "", kernel.UUID{}, proof.ErrSubjectNotResolved
		}
		return proof.SubjectOrder, o.ID(), nil

	case "place", "waypoint":
		w := o.Payload().FindWaypointByRef(ref)
		if w == nil {
			return "", kernel.UUID{}, proof.ErrSubjectNotResolved
		}
		return proof.SubjectWaypoint, w.ID(), nil

	case "entity":
		e := o.Payload().FindEntityByPublicID(ref)
		if e == nil {
			return "", kernel.UUID{}, proof.ErrSubjectNotResolved
		}
		return proof.SubjectEntity, e.ID(), nil

	default:
		return "", kernel.UUID{}, proof.ErrSubjectNotResolved
	}
}
