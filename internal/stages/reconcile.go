package stages

// Reconciliation rebuilds an editable structure from previously saved data.
// The editable shape mirrors the saved entry count exactly, nested sequences
// included, and always exposes at least one empty slot so a fresh stage can
// be filled in. Submissions replace the saved set wholesale; entries carry no
// identity across saves.

// ReconcileLogistics produces the editable logistics structure for a session.
func ReconcileLogistics(saved *LogisticsRecord) LogisticsRecord {
	if saved == nil || len(saved.Events) == 0 {
		return LogisticsRecord{Events: make([]LogisticsEvent, 1)}
	}
	out := LogisticsRecord{Events: make([]LogisticsEvent, len(saved.Events))}
	copy(out.Events, saved.Events)
	return out
}

// ReconcileContent produces the editable content structure for a session.
// Each saved message keeps its own link count; a message saved without links
// still exposes one empty link slot.
func ReconcileContent(saved *ContentRecord) ContentRecord {
	if saved == nil {
		return ContentRecord{Messages: []WhatsAppMessage{{Links: make([]Link, 1)}}}
	}

	out := ContentRecord{
		EmailContent:  saved.EmailContent,
		EmailDateTime: saved.EmailDateTime,
		ImageName:     saved.ImageName,
	}
	if len(saved.Messages) == 0 {
		out.Messages = []WhatsAppMessage{{Links: make([]Link, 1)}}
		return out
	}

	out.Messages = make([]WhatsAppMessage, len(saved.Messages))
	for i, msg := range saved.Messages {
		clone := WhatsAppMessage{Body: msg.Body, DateTime: msg.DateTime}
		if len(msg.Links) == 0 {
			clone.Links = make([]Link, 1)
		} else {
			clone.Links = make([]Link, len(msg.Links))
			copy(clone.Links, msg.Links)
		}
		out.Messages[i] = clone
	}
	return out
}
