package server

// CreateRootRequest represents the payload required to register a scan root.
type CreateRootRequest struct {
	Slug  string `json:"slug" example:"archive"`
	Path  string `json:"path" example:"/mnt/media/archive"`
	Label string `json:"label" example:"Archive drive"`
}

// ScanJobRequest optionally overrides the scan defaults for one run.
type ScanJobRequest struct {
	MaxDepth      int  `json:"maxDepth" example:"3"`
	IncludeHidden bool `json:"includeHidden" example:"false"`
}

// ProjectPreviewRequest names the project folder to preview.
type ProjectPreviewRequest struct {
	Path string `json:"path" example:"/mnt/media/archive/Spring Launch"`
}

// BatchPreviewRequest selects the project folders to preview together.
type BatchPreviewRequest struct {
	Projects []string `json:"projects" example:"[\"/mnt/media/archive/Spring Launch\"]"`
}

// BatchApplyJobRequest selects the project folders for a batch update.
type BatchApplyJobRequest struct {
	Projects      []string `json:"projects" example:"[\"/mnt/media/archive/Spring Launch\"]"`
	CreateMissing bool     `json:"createMissing" example:"false"`
}

// AssociateVideoRequest attaches a hosted video to a project.
type AssociateVideoRequest struct {
	Path   string `json:"path" example:"/mnt/media/archive/Spring Launch"`
	URL    string `json:"url" example:"https://sproutvideo.com/videos/a098dbe191"`
	Title  string `json:"title" example:"Spring Launch final cut"`
	APIKey string `json:"apiKey" example:""`
}

// UpdateVideoRequest edits an attached video's metadata.
type UpdateVideoRequest struct {
	Path             string `json:"path" example:"/mnt/media/archive/Spring Launch"`
	URL              string `json:"url" example:"https://sproutvideo.com/videos/a098dbe191"`
	Title            string `json:"title" example:"Spring Launch v2"`
	SourceRenderFile string `json:"sourceRenderFile" example:"Renders/final_v2.mp4"`
}

// RemoveVideoRequest detaches a video from a project.
type RemoveVideoRequest struct {
	Path string `json:"path" example:"/mnt/media/archive/Spring Launch"`
	URL  string `json:"url" example:"https://sproutvideo.com/videos/a098dbe191"`
}

// ReorderVideosRequest rewrites a project's video order.
type ReorderVideosRequest struct {
	Path string   `json:"path" example:"/mnt/media/archive/Spring Launch"`
	URLs []string `json:"urls" example:"[\"https://sproutvideo.com/videos/a098dbe191\"]"`
}

// AssociateCardRequest attaches a Trello card to a project.
type AssociateCardRequest struct {
	Path     string `json:"path" example:"/mnt/media/archive/Spring Launch"`
	URL      string `json:"url" example:"https://trello.com/c/AbCdEfGh/12-spring-launch"`
	APIKey   string `json:"apiKey" example:""`
	APIToken string `json:"apiToken" example:""`
}

// RemoveCardRequest detaches a Trello card from a project.
type RemoveCardRequest struct {
	Path   string `json:"path" example:"/mnt/media/archive/Spring Launch"`
	CardID string `json:"cardId" example:"AbCdEfGh"`
}

// ErrorResponse is a uniform error payload returned by the API.
type ErrorResponse struct {
	Error string `json:"error" example:"not found"`
}
