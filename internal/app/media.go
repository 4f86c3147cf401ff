package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bakerapp/baker/internal/breadcrumbs"
	"github.com/bakerapp/baker/internal/logging"
	"github.com/bakerapp/baker/internal/sprout"
	"github.com/bakerapp/baker/internal/trello"
)

var (
	ErrNoBreadcrumbs   = errors.New("project has no breadcrumbs file")
	ErrVideoLimit      = fmt.Errorf("a project can hold at most %d video links", breadcrumbs.MaxVideoLinks)
	ErrCardLimit       = fmt.Errorf("a project can hold at most %d Trello cards", breadcrumbs.MaxTrelloCards)
	ErrDuplicateCard   = errors.New("card is already associated with this project")
	ErrVideoNotFound   = errors.New("video link not found on this project")
	ErrCardNotAttached = errors.New("card is not associated with this project")
	ErrBadReorder      = errors.New("reorder list must contain each current video exactly once")
)

// loadForEdit loads a project's breadcrumbs for mutation. Associations only
// make sense on an existing, parseable file.
func loadForEdit(projectPath string) (*breadcrumbs.Snapshot, error) {
	snap, err := breadcrumbs.Load(projectPath)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, ErrNoBreadcrumbs
	}
	return snap, nil
}

// saveEdited stamps lastModified and writes the snapshot back.
func (o *Orchestrator) saveEdited(projectPath string, snap *breadcrumbs.Snapshot) error {
	stamp := time.Now().UTC().Format(time.RFC3339)
	snap.LastModified = &stamp
	return breadcrumbs.Save(projectPath, snap, o.cfg.BackupOriginals)
}

// AssociateVideoLink attaches a hosted video to a project. When an API key is
// provided the title, thumbnail and upload date are resolved from Sprout
// Video; otherwise a bare link with the caller's title is stored.
func (o *Orchestrator) AssociateVideoLink(ctx context.Context, projectPath, videoURL, title, apiKey string) (*breadcrumbs.VideoLink, error) {
	snap, err := loadForEdit(projectPath)
	if err != nil {
		return nil, err
	}
	if len(snap.VideoLinks) >= breadcrumbs.MaxVideoLinks {
		return nil, ErrVideoLimit
	}

	var link *breadcrumbs.VideoLink
	if apiKey != "" {
		link, err = o.sprout.FetchVideo(ctx, videoURL, apiKey)
		if err != nil {
			return nil, err
		}
	} else {
		videoID, _ := sprout.ExtractVideoID(videoURL)
		link = &breadcrumbs.VideoLink{URL: videoURL, SproutVideoID: videoID}
	}
	if title != "" {
		link.Title = title
	}
	if link.Title == "" {
		link.Title = "Untitled video"
	}

	snap.VideoLinks = append(snap.VideoLinks, *link)
	if err := o.saveEdited(projectPath, snap); err != nil {
		return nil, err
	}

	o.logger.Info("video link associated",
		logging.Field{Key: "project", Value: projectPath},
		logging.Field{Key: "url", Value: videoURL})
	return link, nil
}

// UpdateVideoLink edits the title or source render file of an attached video,
// matched by URL.
func (o *Orchestrator) UpdateVideoLink(projectPath, videoURL, title, sourceRenderFile string) (*breadcrumbs.VideoLink, error) {
	snap, err := loadForEdit(projectPath)
	if err != nil {
		return nil, err
	}

	idx := findVideoLink(snap, videoURL)
	if idx < 0 {
		return nil, ErrVideoNotFound
	}
	if title != "" {
		snap.VideoLinks[idx].Title = title
	}
	if sourceRenderFile != "" {
		snap.VideoLinks[idx].SourceRenderFile = sourceRenderFile
	}

	if err := o.saveEdited(projectPath, snap); err != nil {
		return nil, err
	}
	link := snap.VideoLinks[idx]
	return &link, nil
}

// RemoveVideoLink detaches a video from a project, matched by URL.
func (o *Orchestrator) RemoveVideoLink(projectPath, videoURL string) error {
	snap, err := loadForEdit(projectPath)
	if err != nil {
		return err
	}

	idx := findVideoLink(snap, videoURL)
	if idx < 0 {
		return ErrVideoNotFound
	}
	snap.VideoLinks = append(snap.VideoLinks[:idx], snap.VideoLinks[idx+1:]...)

	return o.saveEdited(projectPath, snap)
}

// ReorderVideoLinks rewrites the video list in the given URL order. The list
// must be a permutation of the current links.
func (o *Orchestrator) ReorderVideoLinks(projectPath string, urls []string) error {
	snap, err := loadForEdit(projectPath)
	if err != nil {
		return err
	}
	if len(urls) != len(snap.VideoLinks) {
		return ErrBadReorder
	}

	reordered := make([]breadcrumbs.VideoLink, 0, len(urls))
	used := make(map[int]bool, len(urls))
	for _, url := range urls {
		found := -1
		for i, link := range snap.VideoLinks {
			if link.URL == url && !used[i] {
				found = i
				break
			}
		}
		if found < 0 {
			return ErrBadReorder
		}
		used[found] = true
		reordered = append(reordered, snap.VideoLinks[found])
	}
	snap.VideoLinks = reordered

	return o.saveEdited(projectPath, snap)
}

// ListVideoLinks returns a project's attached videos in display order.
func (o *Orchestrator) ListVideoLinks(projectPath string) ([]breadcrumbs.VideoLink, error) {
	snap, err := loadForEdit(projectPath)
	if err != nil {
		return nil, err
	}
	return snap.VideoLinks, nil
}

func findVideoLink(snap *breadcrumbs.Snapshot, videoURL string) int {
	for i, link := range snap.VideoLinks {
		if link.URL == videoURL {
			return i
		}
	}
	return -1
}

// AssociateTrelloCard attaches a Trello card to a project. Any value still in
// the deprecated single-card field is migrated into the card list first, the
// card's title and board are resolved from the Trello API, and the legacy
// field is kept mirrored to the first card.
func (o *Orchestrator) AssociateTrelloCard(ctx context.Context, projectPath, cardURL, apiKey, apiToken string) (*breadcrumbs.TrelloCard, error) {
	cardID, ok := trello.ExtractCardID(cardURL)
	if !ok {
		return nil, trello.ErrInvalidCardURL
	}

	snap, err := loadForEdit(projectPath)
	if err != nil {
		return nil, err
	}

	snap.TrelloCards = breadcrumbs.MigratedTrelloCards(snap, trello.ExtractCardID)
	if breadcrumbs.HasTrelloCard(snap, cardID) {
		return nil, ErrDuplicateCard
	}
	if len(snap.TrelloCards) >= breadcrumbs.MaxTrelloCards {
		return nil, ErrCardLimit
	}

	card, err := o.trello.FetchCard(ctx, cardURL, apiKey, apiToken)
	if err != nil {
		return nil, err
	}

	snap.TrelloCards = append(snap.TrelloCards, *card)
	breadcrumbs.SyncLegacyCardURL(snap)

	if err := o.saveEdited(projectPath, snap); err != nil {
		return nil, err
	}

	o.logger.Info("trello card associated",
		logging.Field{Key: "project", Value: projectPath},
		logging.Field{Key: "card_id", Value: cardID})
	return card, nil
}

// RemoveTrelloCard detaches a card from a project by card id and keeps the
// deprecated single-card field in sync.
func (o *Orchestrator) RemoveTrelloCard(projectPath, cardID string) error {
	snap, err := loadForEdit(projectPath)
	if err != nil {
		return err
	}

	snap.TrelloCards = breadcrumbs.MigratedTrelloCards(snap, trello.ExtractCardID)
	idx := -1
	for i, c := range snap.TrelloCards {
		if c.CardID == cardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrCardNotAttached
	}
	snap.TrelloCards = append(snap.TrelloCards[:idx], snap.TrelloCards[idx+1:]...)
	breadcrumbs.SyncLegacyCardURL(snap)

	return o.saveEdited(projectPath, snap)
}

// ListTrelloCards returns a project's cards with the legacy single-card field
// migrated in, without modifying the file.
func (o *Orchestrator) ListTrelloCards(projectPath string) ([]breadcrumbs.TrelloCard, error) {
	snap, err := loadForEdit(projectPath)
	if err != nil {
		return nil, err
	}
	return breadcrumbs.MigratedTrelloCards(snap, trello.ExtractCardID), nil
}
