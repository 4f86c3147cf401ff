package breadcrumbs

// FileName is the on-disk name of the per-project metadata file.
const FileName = "breadcrumbs.json"

// Limits on the newer association arrays, enforced when attaching.
const (
	MaxVideoLinks  = 20
	MaxTrelloCards = 10
)

// FileInfo is one footage file tracked by a project, with its camera
// assignment. Order inside Snapshot.Files is significant: the camera
// assignment UI is order-sensitive.
type FileInfo struct {
	Camera int    `json:"camera"`
	Name   string `json:"name"`
	Path   string `json:"path"`
}

// VideoLink is a hosted video (typically Sprout Video) associated with a
// project.
type VideoLink struct {
	URL              string `json:"url"`
	SproutVideoID    string `json:"sproutVideoId,omitempty"`
	Title            string `json:"title"`
	ThumbnailURL     string `json:"thumbnailUrl,omitempty"`
	UploadDate       string `json:"uploadDate,omitempty"`
	SourceRenderFile string `json:"sourceRenderFile,omitempty"`
}

// TrelloCard is a kanban card associated with a project.
type TrelloCard struct {
	URL         string `json:"url"`
	CardID      string `json:"cardId"`
	Title       string `json:"title"`
	BoardName   string `json:"boardName,omitempty"`
	LastFetched string `json:"lastFetched,omitempty"`
}

// Snapshot is the breadcrumbs record for one project folder at a point in
// time. The JSON keys are the application's wire format and must not change;
// the desktop UI and the files already on disk both use them.
//
// Snapshots are value objects: one is loaded from disk (the "current" state)
// and another is computed from the live folder (the "new" state), and the
// diff engine compares the two without mutating either.
type Snapshot struct {
	ProjectTitle     string     `json:"projectTitle"`
	NumberOfCameras  int        `json:"numberOfCameras"`
	Files            []FileInfo `json:"files"`
	ParentFolder     string     `json:"parentFolder"`
	CreatedBy        string     `json:"createdBy"`
	CreationDateTime string     `json:"creationDateTime"`

	// Maintenance bookkeeping, refreshed on every update.
	FolderSizeBytes *uint64 `json:"folderSizeBytes,omitempty"`
	LastModified    *string `json:"lastModified,omitempty"`
	ScannedBy       *string `json:"scannedBy,omitempty"`

	// Deprecated: single-card predecessor of TrelloCards. Kept readable and
	// mirrored on write for older installs.
	TrelloCardURL *string `json:"trelloCardUrl,omitempty"`

	VideoLinks  []VideoLink  `json:"videoLinks,omitempty"`
	TrelloCards []TrelloCard `json:"trelloCards,omitempty"`
}

// Clone returns a deep copy of the snapshot. Handy for building a "new"
// snapshot starting from the current one without sharing slices.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := *s
	out.Files = append([]FileInfo(nil), s.Files...)
	out.VideoLinks = append([]VideoLink(nil), s.VideoLinks...)
	out.TrelloCards = append([]TrelloCard(nil), s.TrelloCards...)
	if s.FolderSizeBytes != nil {
		v := *s.FolderSizeBytes
		out.FolderSizeBytes = &v
	}
	if s.LastModified != nil {
		v := *s.LastModified
		out.LastModified = &v
	}
	if s.ScannedBy != nil {
		v := *s.ScannedBy
		out.ScannedBy = &v
	}
	if s.TrelloCardURL != nil {
		v := *s.TrelloCardURL
		out.TrelloCardURL = &v
	}
	return &out
}
