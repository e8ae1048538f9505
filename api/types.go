package api

// Endpoints of the Raysurfer API
const (
	EndpointSearch         = "/api/retrieve/search"
	EndpointUpload         = "/api/store/execution-result"
	EndpointVote           = "/api/store/cache-usage"
	EndpointPatterns       = "/api/retrieve/task-patterns"
	EndpointFewShotExample = "/api/retrieve/few-shot-examples"
)

// SearchRequest is the body of a search query
type SearchRequest struct {
	Task            string  `json:"task" validate:"required"`
	TopK            int     `json:"top_k" validate:"min=1"`
	MinVerdictScore float64 `json:"min_verdict_score" validate:"min=0,max=1"`
	PreferComplete  bool    `json:"prefer_complete"`
	// PublicSnips broadens the search to community-visible snippets
	PublicSnips bool `json:"public_snips"`
}

// NewSearchRequest returns a SearchRequest with the service defaults.
func NewSearchRequest(task string) SearchRequest {
	return SearchRequest{
		Task:           task,
		TopK:           5,
		PreferComplete: true,
	}
}

// UploadFile is a single file sent with an upload
type UploadFile struct {
	Path    string `json:"path" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// UploadRequest is the body of an upload
type UploadRequest struct {
	Task         string       `json:"task" validate:"required"`
	FilesWritten []UploadFile `json:"files_written" validate:"required,min=1,dive"`
	Succeeded    bool         `json:"succeeded"`
	AutoVote     bool         `json:"auto_vote"`
}

// VoteRequest is the body of a vote. Succeeded is true for an upvote.
type VoteRequest struct {
	CodeBlockID          string `json:"code_block_id" validate:"required"`
	Succeeded            bool   `json:"succeeded"`
	Task                 string `json:"task"`
	CodeBlockName        string `json:"code_block_name"`
	CodeBlockDescription string `json:"code_block_description"`
}

// PatternsRequest is the body of a task-patterns lookup
type PatternsRequest struct {
	Task        string `json:"task"`
	CodeBlockID string `json:"code_block_id"`
	MinThumbsUp int    `json:"min_thumbs_up" validate:"min=0"`
	TopK        int    `json:"top_k" validate:"min=1"`
}

// NewPatternsRequest returns a PatternsRequest with the service defaults.
func NewPatternsRequest(task string) PatternsRequest {
	return PatternsRequest{
		Task:        task,
		MinThumbsUp: 1,
		TopK:        5,
	}
}

// FewShotRequest is the body of a few-shot examples lookup
type FewShotRequest struct {
	Task string `json:"task" validate:"required"`
	K    int    `json:"k" validate:"min=1"`
}

// CodeBlock is a cached snippet as stored by the service
type CodeBlock struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Source       string   `json:"source"`
	Entrypoint   string   `json:"entrypoint"`
	Language     string   `json:"language"`
	Dependencies []string `json:"dependencies"`
	Tags         []string `json:"tags"`
}

// SearchMatch is a single ranked match. Order is decided by the server.
type SearchMatch struct {
	CodeBlock     *CodeBlock `json:"code_block"`
	CombinedScore float64    `json:"combined_score"`
	VectorScore   float64    `json:"vector_score"`
	VerdictScore  float64    `json:"verdict_score"`
	ThumbsUp      int        `json:"thumbs_up"`
	ThumbsDown    int        `json:"thumbs_down"`
	Filename      string     `json:"filename"`
	Language      string     `json:"language"`
	Entrypoint    string     `json:"entrypoint"`
	Dependencies  []string   `json:"dependencies"`
}

// SearchResponse is the result of a search query
type SearchResponse struct {
	Matches          []SearchMatch `json:"matches"`
	TotalFound       int           `json:"total_found"`
	CacheHit         bool          `json:"cache_hit"`
	SearchNamespaces []string      `json:"search_namespaces"`
}

// UploadResponse is the result of an upload
type UploadResponse struct {
	Success      bool     `json:"success"`
	CodeBlockIDs []string `json:"code_block_ids"`
	Message      string   `json:"message"`
}

// VoteResponse is the result of a vote
type VoteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// PatternEntry is one aggregate pattern
type PatternEntry struct {
	CodeBlock     *CodeBlock `json:"code_block"`
	ThumbsUp      int        `json:"thumbs_up"`
	ThumbsDown    int        `json:"thumbs_down"`
	CombinedScore float64    `json:"combined_score"`
}

// PatternsResponse is the result of a task-patterns lookup
type PatternsResponse struct {
	Patterns []PatternEntry `json:"patterns"`
}

// FewShotExample is a task paired with code that solved it
type FewShotExample struct {
	Task string `json:"task"`
	Code string `json:"code"`
}

// FewShotResponse is the result of a few-shot examples lookup
type FewShotResponse struct {
	Examples []FewShotExample `json:"examples"`
}
