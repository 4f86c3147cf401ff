package breadcrumbs

// MigratedTrelloCards returns the project's Trello cards, synthesizing a
// single card from the deprecated trelloCardUrl field when the newer array is
// empty. extractID maps a card URL to its card id; URLs it cannot parse are
// skipped. The snapshot itself is not modified (migration is in-memory until
// the next write).
func MigratedTrelloCards(s *Snapshot, extractID func(url string) (string, bool)) []TrelloCard {
	if s == nil {
		return nil
	}
	if len(s.TrelloCards) > 0 {
		return append([]TrelloCard(nil), s.TrelloCards...)
	}
	if s.TrelloCardURL == nil || *s.TrelloCardURL == "" {
		return nil
	}
	id, ok := extractID(*s.TrelloCardURL)
	if !ok {
		return nil
	}
	return []TrelloCard{{
		URL:    *s.TrelloCardURL,
		CardID: id,
		Title:  "Card " + id,
	}}
}

// SyncLegacyCardURL mirrors the first Trello card's URL into the deprecated
// trelloCardUrl field so older installs reading the file keep working, and
// clears it when no cards remain.
func SyncLegacyCardURL(s *Snapshot) {
	if len(s.TrelloCards) > 0 {
		url := s.TrelloCards[0].URL
		s.TrelloCardURL = &url
		return
	}
	s.TrelloCardURL = nil
}

// HasTrelloCard reports whether a card with the given id is already
// associated with the project.
func HasTrelloCard(s *Snapshot, cardID string) bool {
	for _, c := range s.TrelloCards {
		if c.CardID == cardID {
			return true
		}
	}
	return false
}
