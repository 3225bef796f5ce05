package provider

type SearchResult struct {
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	Channel      string `json:"channel"`
	ThumbnailURL string `json:"thumbnail"`
}

type Diagnostics struct {
	HasKey    bool    `json:"hasKey"`
	KeyPrefix *string `json:"keyPrefix"`
	Go        string  `json:"go"`
}
