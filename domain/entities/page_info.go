package entities

// PageInfo is the URL and title of the page currently loaded in a session
type PageInfo struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}
