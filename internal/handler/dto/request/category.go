package request

// CategoryActionRequest carries admin actions posted to the category surface;
// "clearCache" is the only action supported today.
type CategoryActionRequest struct {
	Action string `json:"action" binding:"required"`
}

const ActionClearCache = "clearCache"
